package github

import (
	"net/url"
	"strconv"

	"github.com/him0/swift-Sample-GitHubSearch-2016/endpoint"
)

// AcceptHeader requests the versioned v3 media type.
const AcceptHeader = "application/vnd.github.v3+json"

// Search sort keys and orders accepted by the API.
const (
	SortStars   = "stars"
	SortForks   = "forks"
	SortUpdated = "updated"

	SortFollowers    = "followers"
	SortRepositories = "repositories"
	SortJoined       = "joined"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// MaxPerPage is the largest page size the search API honors.
const MaxPerPage = 100

// Sort selects the sort key.
func Sort(key string) endpoint.Option { return endpoint.WithQuery("sort", key) }

// Order selects asc or desc; the API ignores it without Sort.
func Order(o string) endpoint.Option { return endpoint.WithQuery("order", o) }

// PerPage sets the page size.
func PerPage(n int) endpoint.Option { return endpoint.WithQuery("per_page", strconv.Itoa(n)) }

// SearchRepositories describes GET search/repositories?q=<query>&page=<page>.
// Extra options (Sort, Order, PerPage, or any endpoint.Option) apply after q
// and page in the order given. page <= 0 omits the parameter and the API
// serves the first page.
func SearchRepositories(query string, page int, opts ...endpoint.Option) endpoint.Endpoint[SearchResult[Repository]] {
	return endpoint.Get[SearchResult[Repository]]("search/repositories", searchOptions("search/repositories", query, page, opts)...)
}

// SearchUsers describes GET search/users?q=<query>&page=<page>.
func SearchUsers(query string, page int, opts ...endpoint.Option) endpoint.Endpoint[SearchResult[User]] {
	return endpoint.Get[SearchResult[User]]("search/users", searchOptions("search/users", query, page, opts)...)
}

// GetRepository describes GET repos/<owner>/<name>.
func GetRepository(owner, name string) endpoint.Endpoint[Repository] {
	return endpoint.Get[Repository](
		"repos/"+url.PathEscape(owner)+"/"+url.PathEscape(name),
		endpoint.WithHeader("Accept", AcceptHeader),
		endpoint.WithName("repos/get"),
	)
}

func searchOptions(name, query string, page int, opts []endpoint.Option) []endpoint.Option {
	out := []endpoint.Option{endpoint.WithQuery("q", query)}
	if page > 0 {
		out = append(out, endpoint.WithQuery("page", strconv.Itoa(page)))
	}
	out = append(out,
		endpoint.WithHeader("Accept", AcceptHeader),
		endpoint.WithName(name),
	)
	return append(out, opts...)
}

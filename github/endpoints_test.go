package github_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/him0/swift-Sample-GitHubSearch-2016/endpoint"
	"github.com/him0/swift-Sample-GitHubSearch-2016/github"
)

var api, _ = url.Parse("https://api.github.com")

func TestSearchRepositories_Shape(t *testing.T) {
	ep := github.SearchRepositories("swift", 2)

	if ep.Method() != http.MethodGet || ep.Path() != "search/repositories" {
		t.Fatalf("method/path: %s %s", ep.Method(), ep.Path())
	}
	q := ep.Query()
	want := []endpoint.Param{{Key: "q", Value: "swift"}, {Key: "page", Value: "2"}}
	if len(q) != len(want) {
		t.Fatalf("query: %+v", q)
	}
	for i := range want {
		if q[i] != want[i] {
			t.Fatalf("query[%d] = %+v, want %+v", i, q[i], want[i])
		}
	}
	if got := ep.Header().Get("Accept"); got != github.AcceptHeader {
		t.Fatalf("accept: %q", got)
	}
	u, err := ep.URL(api)
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if u.String() != "https://api.github.com/search/repositories?q=swift&page=2" {
		t.Fatalf("url: %s", u)
	}
}

func TestSearchRepositories_Options(t *testing.T) {
	ep := github.SearchRepositories("language:swift stars:>10", 1,
		github.Sort(github.SortStars), github.Order(github.OrderDesc), github.PerPage(50))
	got := ep.EncodeQuery()
	want := "q=language%3Aswift+stars%3A%3E10&page=1&sort=stars&order=desc&per_page=50"
	if got != want {
		t.Fatalf("query:\n got %s\nwant %s", got, want)
	}
	if ep.Name() != "search/repositories" {
		t.Fatalf("name: %s", ep.Name())
	}
}

func TestSearchRepositories_NoPage(t *testing.T) {
	if got := github.SearchRepositories("go", 0).EncodeQuery(); got != "q=go" {
		t.Fatalf("query: %s", got)
	}
}

func TestSearchRepositories_Deterministic(t *testing.T) {
	a, _ := github.SearchRepositories("swift", 2).Signature(api)
	b, _ := github.SearchRepositories("swift", 2).Signature(api)
	if a != b || a != "GET https://api.github.com/search/repositories?q=swift&page=2" {
		t.Fatalf("signatures: %q %q", a, b)
	}
}

func TestSearchUsers_Shape(t *testing.T) {
	req, err := github.SearchUsers("him0", 3, github.Sort(github.SortFollowers)).Request(context.Background(), api)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if req.URL.String() != "https://api.github.com/search/users?q=him0&page=3&sort=followers" {
		t.Fatalf("url: %s", req.URL)
	}
	if req.Header.Get("Accept") != github.AcceptHeader {
		t.Fatalf("accept header missing")
	}
}

func TestGetRepository_Path(t *testing.T) {
	ep := github.GetRepository("apple", "swift")
	u, err := ep.URL(api)
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if u.String() != "https://api.github.com/repos/apple/swift" {
		t.Fatalf("url: %s", u)
	}
	if ep.Name() != "repos/get" {
		t.Fatalf("name: %s", ep.Name())
	}
}

func TestSearchRepositories_DecodeBody(t *testing.T) {
	body := `{"total_count": 1, "incomplete_results": false, "items": [` + repoJSON + `]}`
	res, err := github.SearchRepositories("swift", 1).Decode([]byte(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.TotalCount != 1 || len(res.Items) != 1 || res.Items[0].Name != "swift" {
		t.Fatalf("result: %+v", res)
	}
}

// Package github holds the records and endpoint builders for the GitHub
// search API.
package github

import (
	"net/url"
	"time"

	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
	"github.com/him0/swift-Sample-GitHubSearch-2016/codec"
)

// User is a GitHub account as embedded in repositories and returned by user
// search.
type User struct {
	Login     string
	ID        int64
	AvatarURL *url.URL
	HTMLURL   *url.URL
	Type      string
	SiteAdmin bool
	// Score is only present in search results.
	Score *float64
}

func (u *User) DecodeObject(obj ghsearch.Object) (err error) {
	if u.Login, err = ghsearch.Field[string](obj, "login"); err != nil {
		return err
	}
	if u.ID, err = ghsearch.Field[int64](obj, "id"); err != nil {
		return err
	}
	if u.AvatarURL, err = ghsearch.FieldWith(obj, "avatar_url", codec.URL()); err != nil {
		return err
	}
	if u.HTMLURL, err = ghsearch.FieldWith(obj, "html_url", codec.URL()); err != nil {
		return err
	}
	if u.Type, err = ghsearch.Field[string](obj, "type"); err != nil {
		return err
	}
	if u.SiteAdmin, err = ghsearch.Field[bool](obj, "site_admin"); err != nil {
		return err
	}
	u.Score, err = ghsearch.Optional[float64](obj, "score")
	return err
}

// License is the detected license of a repository.
type License struct {
	Key    string
	Name   string
	SPDXID *string
}

func (l *License) DecodeObject(obj ghsearch.Object) (err error) {
	if l.Key, err = ghsearch.Field[string](obj, "key"); err != nil {
		return err
	}
	if l.Name, err = ghsearch.Field[string](obj, "name"); err != nil {
		return err
	}
	l.SPDXID, err = ghsearch.Optional[string](obj, "spdx_id")
	return err
}

// Repository is one repository as returned by search and by the repository
// endpoint.
type Repository struct {
	ID              int64
	Name            string
	FullName        string
	Owner           User
	Private         bool
	HTMLURL         *url.URL
	Description     *string
	Fork            bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PushedAt        *time.Time
	Homepage        *string
	Size            int64
	StargazersCount int64
	WatchersCount   int64
	Language        *string
	ForksCount      int64
	OpenIssuesCount int64
	DefaultBranch   string
	License         *License
	Topics          []string // nil when absent or null
	Score           *float64
}

func (r *Repository) DecodeObject(obj ghsearch.Object) (err error) {
	if r.ID, err = ghsearch.Field[int64](obj, "id"); err != nil {
		return err
	}
	if r.Name, err = ghsearch.Field[string](obj, "name"); err != nil {
		return err
	}
	if r.FullName, err = ghsearch.Field[string](obj, "full_name"); err != nil {
		return err
	}
	if r.Owner, err = ghsearch.Field[User](obj, "owner"); err != nil {
		return err
	}
	if r.Private, err = ghsearch.Field[bool](obj, "private"); err != nil {
		return err
	}
	if r.HTMLURL, err = ghsearch.FieldWith(obj, "html_url", codec.URL()); err != nil {
		return err
	}
	if r.Description, err = ghsearch.Optional[string](obj, "description"); err != nil {
		return err
	}
	if r.Fork, err = ghsearch.Field[bool](obj, "fork"); err != nil {
		return err
	}
	if r.CreatedAt, err = ghsearch.FieldWith(obj, "created_at", codec.GitHubTime()); err != nil {
		return err
	}
	if r.UpdatedAt, err = ghsearch.FieldWith(obj, "updated_at", codec.GitHubTime()); err != nil {
		return err
	}
	if r.PushedAt, err = ghsearch.OptionalWith(obj, "pushed_at", codec.GitHubTime()); err != nil {
		return err
	}
	if r.Homepage, err = ghsearch.Optional[string](obj, "homepage"); err != nil {
		return err
	}
	if r.Size, err = ghsearch.Field[int64](obj, "size"); err != nil {
		return err
	}
	if r.StargazersCount, err = ghsearch.Field[int64](obj, "stargazers_count"); err != nil {
		return err
	}
	if r.WatchersCount, err = ghsearch.Field[int64](obj, "watchers_count"); err != nil {
		return err
	}
	if r.Language, err = ghsearch.Optional[string](obj, "language"); err != nil {
		return err
	}
	if r.ForksCount, err = ghsearch.Field[int64](obj, "forks_count"); err != nil {
		return err
	}
	if r.OpenIssuesCount, err = ghsearch.Field[int64](obj, "open_issues_count"); err != nil {
		return err
	}
	if r.DefaultBranch, err = ghsearch.Field[string](obj, "default_branch"); err != nil {
		return err
	}
	if r.License, err = ghsearch.Optional[License](obj, "license"); err != nil {
		return err
	}
	topics, err := ghsearch.Optional[[]string](obj, "topics")
	if err != nil {
		return err
	}
	if topics != nil {
		r.Topics = *topics
	}
	r.Score, err = ghsearch.Optional[float64](obj, "score")
	return err
}

// SearchResult is one page of a search response.
type SearchResult[T any] struct {
	TotalCount        int64
	IncompleteResults bool
	Items             []T
}

func (s *SearchResult[T]) DecodeObject(obj ghsearch.Object) (err error) {
	if s.TotalCount, err = ghsearch.Field[int64](obj, "total_count"); err != nil {
		return err
	}
	if s.IncompleteResults, err = ghsearch.Field[bool](obj, "incomplete_results"); err != nil {
		return err
	}
	s.Items, err = ghsearch.Field[[]T](obj, "items")
	return err
}

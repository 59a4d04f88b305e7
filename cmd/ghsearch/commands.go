package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	ghsearch "github.com/him0/swift-Sample-GitHubSearch-2016"
	"github.com/him0/swift-Sample-GitHubSearch-2016/endpoint"
	"github.com/him0/swift-Sample-GitHubSearch-2016/github"
	"github.com/him0/swift-Sample-GitHubSearch-2016/transport"
)

// PageFlags selects which result pages to fetch.
type PageFlags struct {
	Page        int    `help:"First page to fetch." default:"1"`
	Pages       int    `help:"Number of consecutive pages to fetch." default:"1"`
	PerPage     int    `help:"Results per page (1..100); 0 uses the configured value." default:"0"`
	Concurrency int    `help:"Maximum pages fetched at once." default:"4"`
	Order       string `help:"Sort order." enum:"asc,desc" default:"desc"`
}

func (p PageFlags) validate() error {
	if p.Page < 1 {
		return errors.New("--page must be at least 1")
	}
	if p.Pages < 1 {
		return errors.New("--pages must be at least 1")
	}
	if p.PerPage < 0 || p.PerPage > github.MaxPerPage {
		return fmt.Errorf("--per-page must be within 0..%d", github.MaxPerPage)
	}
	if p.Concurrency < 1 {
		return errors.New("--concurrency must be at least 1")
	}
	return nil
}

func (p PageFlags) numbers() []int {
	out := make([]int, p.Pages)
	for i := range out {
		out[i] = p.Page + i
	}
	return out
}

// SearchCmd searches repositories.
type SearchCmd struct {
	Query    []string `arg:"" help:"Search terms and qualifiers, e.g. 'swift stars:>100'."`
	Language string   `help:"Restrict to a language (adds a language: qualifier)." short:"l"`
	Sort     string   `help:"Sort key." enum:"best-match,stars,forks,updated" default:"best-match"`
	PageFlags
}

func (c *SearchCmd) Run(a *app) error {
	if err := c.validate(); err != nil {
		return err
	}
	query := strings.Join(c.Query, " ")
	if c.Language != "" {
		query += " language:" + c.Language
	}
	opts := a.searchOptions(c.Sort, c.PageFlags)
	results, err := fetchPages(a, c.PageFlags, func(page int) endpoint.Endpoint[github.SearchResult[github.Repository]] {
		return github.SearchRepositories(query, page, opts...)
	})
	if err != nil {
		return err
	}
	return a.write(repositoryPage(merge(results)))
}

// UsersCmd searches users.
type UsersCmd struct {
	Query []string `arg:"" help:"Search terms and qualifiers, e.g. 'location:tokyo'."`
	Sort  string   `help:"Sort key." enum:"best-match,followers,repositories,joined" default:"best-match"`
	PageFlags
}

func (c *UsersCmd) Run(a *app) error {
	if err := c.validate(); err != nil {
		return err
	}
	query := strings.Join(c.Query, " ")
	opts := a.searchOptions(c.Sort, c.PageFlags)
	results, err := fetchPages(a, c.PageFlags, func(page int) endpoint.Endpoint[github.SearchResult[github.User]] {
		return github.SearchUsers(query, page, opts...)
	})
	if err != nil {
		return err
	}
	return a.write(userPage(merge(results)))
}

// RepoCmd shows one repository.
type RepoCmd struct {
	Name string `arg:"" help:"Repository as owner/name."`
}

func (c *RepoCmd) Run(a *app) error {
	owner, name, ok := strings.Cut(c.Name, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("repository must be given as owner/name, got %q", c.Name)
	}
	repo, err := transport.Send(a.ctx, a.doer, a.base, github.GetRepository(owner, name), transport.WithRecorder(a.metrics))
	if err != nil {
		return err
	}
	return a.write(newRepositoryView(repo))
}

// DecodeCmd decodes a saved response without contacting the API.
type DecodeCmd struct {
	File               string `arg:"" optional:"" help:"Response file, or - for stdin." default:"-"`
	Kind               string `help:"Response kind." enum:"repositories,users,repository" default:"repositories"`
	MaxDepth           int    `help:"Maximum nesting depth; 0 uses the default, negative disables." default:"0"`
	AllowDuplicateKeys bool   `help:"Accept objects with repeated keys (last one wins)."`
}

func (c *DecodeCmd) Run(a *app) error {
	var (
		data []byte
		err  error
	)
	if c.File == "-" {
		data, err = io.ReadAll(a.in)
	} else {
		data, err = os.ReadFile(c.File)
	}
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	opt := ghsearch.ParseOpt{MaxDepth: c.MaxDepth, MaxBytes: a.cfg.MaxBodyBytes, AllowDuplicateKeys: c.AllowDuplicateKeys}

	switch c.Kind {
	case "users":
		res, err := ghsearch.Unmarshal[github.SearchResult[github.User]](data, opt)
		if err != nil {
			return err
		}
		return a.write(userPage(res))
	case "repository":
		repo, err := ghsearch.Unmarshal[github.Repository](data, opt)
		if err != nil {
			return err
		}
		return a.write(newRepositoryView(repo))
	default:
		res, err := ghsearch.Unmarshal[github.SearchResult[github.Repository]](data, opt)
		if err != nil {
			return err
		}
		return a.write(repositoryPage(res))
	}
}

func (a *app) searchOptions(sort string, p PageFlags) []endpoint.Option {
	var opts []endpoint.Option
	if sort != "" && sort != "best-match" {
		opts = append(opts, github.Sort(sort), github.Order(p.Order))
	}
	perPage := p.PerPage
	if perPage == 0 {
		perPage = a.cfg.PerPage
	}
	return append(opts, github.PerPage(perPage))
}

// fetchPages requests every page concurrently and returns results in page
// order. The first failure cancels the remaining requests.
func fetchPages[T any](a *app, p PageFlags, build func(page int) endpoint.Endpoint[github.SearchResult[T]]) ([]github.SearchResult[T], error) {
	pages := p.numbers()
	results := make([]github.SearchResult[T], len(pages))

	g, ctx := errgroup.WithContext(a.ctx)
	g.SetLimit(p.Concurrency)
	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			res, err := transport.Send(ctx, a.doer, a.base, build(page), transport.WithRecorder(a.metrics))
			if err != nil {
				return fmt.Errorf("page %d: %w", page, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.log.Debug("pages fetched", nil, map[string]interface{}{"pages": len(pages)})
	return results, nil
}

// merge concatenates pages. The total is taken from the first page and the
// result is incomplete if any page was.
func merge[T any](pages []github.SearchResult[T]) github.SearchResult[T] {
	var out github.SearchResult[T]
	for i, p := range pages {
		if i == 0 {
			out.TotalCount = p.TotalCount
		}
		out.IncompleteResults = out.IncompleteResults || p.IncompleteResults
		out.Items = append(out.Items, p.Items...)
	}
	return out
}

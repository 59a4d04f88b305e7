package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/him0/swift-Sample-GitHubSearch-2016/codec"
	"github.com/him0/swift-Sample-GitHubSearch-2016/github"
)

type repositoryView struct {
	FullName    string `json:"full_name" yaml:"full_name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Language    string `json:"language,omitempty" yaml:"language,omitempty"`
	Stars       int64  `json:"stars" yaml:"stars"`
	Forks       int64  `json:"forks" yaml:"forks"`
	OpenIssues  int64  `json:"open_issues" yaml:"open_issues"`
	License     string `json:"license,omitempty" yaml:"license,omitempty"`
	URL         string `json:"url" yaml:"url"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	UpdatedAt   string `json:"updated_at" yaml:"updated_at"`
	PushedAt    string `json:"pushed_at,omitempty" yaml:"pushed_at,omitempty"`
}

type userView struct {
	Login string `json:"login" yaml:"login"`
	ID    int64  `json:"id" yaml:"id"`
	Type  string `json:"type" yaml:"type"`
	URL   string `json:"url" yaml:"url"`
}

type pageView[T any] struct {
	TotalCount        int64 `json:"total_count" yaml:"total_count"`
	IncompleteResults bool  `json:"incomplete_results" yaml:"incomplete_results"`
	Items             []T   `json:"items" yaml:"items"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func newRepositoryView(r github.Repository) repositoryView {
	v := repositoryView{
		FullName:    r.FullName,
		Description: deref(r.Description),
		Language:    deref(r.Language),
		Stars:       r.StargazersCount,
		Forks:       r.ForksCount,
		OpenIssues:  r.OpenIssuesCount,
		URL:         r.HTMLURL.String(),
		CreatedAt:   codec.FormatRFC3339(r.CreatedAt),
		UpdatedAt:   codec.FormatRFC3339(r.UpdatedAt),
	}
	if r.License != nil {
		v.License = r.License.Name
	}
	if r.PushedAt != nil {
		v.PushedAt = codec.FormatRFC3339(*r.PushedAt)
	}
	return v
}

func newUserView(u github.User) userView {
	return userView{Login: u.Login, ID: u.ID, Type: u.Type, URL: u.HTMLURL.String()}
}

func repositoryPage(res github.SearchResult[github.Repository]) pageView[repositoryView] {
	out := pageView[repositoryView]{TotalCount: res.TotalCount, IncompleteResults: res.IncompleteResults, Items: []repositoryView{}}
	for _, r := range res.Items {
		out.Items = append(out.Items, newRepositoryView(r))
	}
	return out
}

func userPage(res github.SearchResult[github.User]) pageView[userView] {
	out := pageView[userView]{TotalCount: res.TotalCount, IncompleteResults: res.IncompleteResults, Items: []userView{}}
	for _, u := range res.Items {
		out.Items = append(out.Items, newUserView(u))
	}
	return out
}

// write renders v in the selected format.
func (a *app) write(v any) error {
	switch a.format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintf(a.out, "%s\n", data)
		return err
	case "yaml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return writeTable(a.out, v)
	}
}

func writeTable(w io.Writer, v any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	switch v := v.(type) {
	case pageView[repositoryView]:
		fmt.Fprintf(tw, "total: %d%s\n", v.TotalCount, incomplete(v.IncompleteResults))
		fmt.Fprintln(tw, "REPOSITORY\tSTARS\tLANGUAGE\tUPDATED\tDESCRIPTION")
		for _, r := range v.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.FullName, strconv.FormatInt(r.Stars, 10), dash(r.Language), r.UpdatedAt, truncate(r.Description, 60))
		}
	case pageView[userView]:
		fmt.Fprintf(tw, "total: %d%s\n", v.TotalCount, incomplete(v.IncompleteResults))
		fmt.Fprintln(tw, "LOGIN\tID\tTYPE\tURL")
		for _, u := range v.Items {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", u.Login, u.ID, u.Type, u.URL)
		}
	case repositoryView:
		fmt.Fprintf(tw, "name:\t%s\n", v.FullName)
		fmt.Fprintf(tw, "description:\t%s\n", dash(v.Description))
		fmt.Fprintf(tw, "language:\t%s\n", dash(v.Language))
		fmt.Fprintf(tw, "stars:\t%d\n", v.Stars)
		fmt.Fprintf(tw, "forks:\t%d\n", v.Forks)
		fmt.Fprintf(tw, "open issues:\t%d\n", v.OpenIssues)
		fmt.Fprintf(tw, "license:\t%s\n", dash(v.License))
		fmt.Fprintf(tw, "url:\t%s\n", v.URL)
		fmt.Fprintf(tw, "created:\t%s\n", v.CreatedAt)
		fmt.Fprintf(tw, "updated:\t%s\n", v.UpdatedAt)
	default:
		return fmt.Errorf("no table layout for %T", v)
	}
	return tw.Flush()
}

func incomplete(b bool) string {
	if b {
		return " (incomplete)"
	}
	return ""
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

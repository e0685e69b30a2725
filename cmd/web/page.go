package web

import twmerge "github.com/Oudwins/tailwind-merge-go"

//go:generate go tool templ generate

type PageProps struct {
	Title       string
	FeedURL     string
	FragmentURL string
	ContainerID string
	// Placeholder is trusted markup shown until the fragment arrives.
	Placeholder string
	Version     string
	// Class is merged over the container's default classes.
	Class string
}

const containerClass = "rounded-lg border border-slate-200 bg-white p-4 shadow-sm space-y-4"

// Class merges extra utility classes over base, later classes winning.
func Class(base string, extra ...string) string {
	return twmerge.Merge(append([]string{base}, extra...)...)
}

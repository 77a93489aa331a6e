// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	LibrariesConfigNotFoundId
	LibrariesConfigInvalidId
	LibraryDownloadFailedId
	LibraryMergeFailedId
	CacheDirUnavailableId
	ProjectNotFoundId
	BuildFailedId
	BlacklistedImportId
	InvalidMetaId
	UnknownScriptKindId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation for the failure class
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	polymodDocs    HttpLink = "https://github.com/larsiusprime/polymod"
	funkinModDocs  HttpLink = "https://funkincrew.github.io/funkin-modding-docs/"
	hscriptDocs    HttpLink = "https://github.com/HaxeFoundation/hscript"
	semverSpecLink HttpLink = "https://semver.org"

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The vslice configuration file could not be read or did not match the schema.

## Things you can try:
- Show the config file location:
~~~
$ vslice config path
~~~

- Regenerate a default config file and compare:
~~~
$ vslice config init
~~~

## Example config.cue:
~~~cue
http: {
	timeout: "60s"
}
build: {
	output_dir: "build"
}
~~~`,
	}

	librariesConfigNotFoundIssue = &Issue{
		id: LibrariesConfigNotFoundId,
		mdMsg: `
# No vslice-libraries.json found!

Library commands read the library list from the project root.

## Things you can try:
- Run the command from your mod project, or pass it explicitly:
~~~
$ vslice -C path/to/mod libs update
~~~

- Create a new project with a default library list:
~~~
$ vslice init my-mod
~~~`,
	}

	librariesConfigInvalidIssue = &Issue{
		id: LibrariesConfigInvalidId,
		mdMsg: `
# Invalid library configuration!

Each entry of vslice-libraries.json maps a library name to an object with a
"url" pointing at a zip archive and an optional "mergeInto" naming another
library.

## Example:
~~~json
{
  "flixel": {"url": "https://github.com/HaxeFlixel/flixel/archive/refs/heads/dev.zip"},
  "flixel-addons": {
    "url": "https://github.com/HaxeFlixel/flixel-addons/archive/refs/heads/dev.zip",
    "mergeInto": "flixel"
  }
}
~~~`,
	}

	libraryDownloadFailedIssue = &Issue{
		id: LibraryDownloadFailedId,
		mdMsg: `
# Some libraries failed to download!

Other libraries were still processed. A failed library leaves no folder
behind, so the next update retries it.

## Things you can try:
- Check your network connection and the library URL
- Raise the timeout in your config (` + "`http.timeout`" + `)
- Retry with a clean cache:
~~~
$ vslice libs update --clear
~~~`,
		docLinks: []HttpLink{funkinModDocs},
	}

	libraryMergeFailedIssue = &Issue{
		id: LibraryMergeFailedId,
		mdMsg: `
# Library merge failed!

A library with "mergeInto" could not be copied into its target.

## Things you can try:
- Make sure both libraries downloaded successfully
- Check that "mergeInto" names a library listed in the same file`,
	}

	cacheDirUnavailableIssue = &Issue{
		id: CacheDirUnavailableId,
		mdMsg: `
# Library cache is not available!

The cache folder could not be created or read.

## Things you can try:
- Point the cache somewhere writable:
~~~
$ export VSLICE_CACHE_DIR=$HOME/.vslice_libs_cache
~~~

- Or set ` + "`cache_dir`" + ` in your config file`,
	}

	projectNotFoundIssue = &Issue{
		id: ProjectNotFoundId,
		mdMsg: `
# Not a mod project!

No _polymod_meta.json was found in the project folder.

## Things you can try:
- Pass the project folder explicitly:
~~~
$ vslice -C path/to/mod build
~~~

- Create a new project:
~~~
$ vslice init my-mod
~~~`,
		docLinks: []HttpLink{polymodDocs},
	}

	buildFailedIssue = &Issue{
		id: BuildFailedId,
		mdMsg: `
# Build failed!

The mod archive could not be written. A partial zip may remain in the
output folder.

## Things you can try:
- Check that the output folder is writable
- Choose a different output folder:
~~~
$ vslice build --output-dir dist
~~~`,
	}

	blacklistedImportIssue = &Issue{
		id: BlacklistedImportId,
		mdMsg: `
# Blacklisted imports found!

Polymod refuses to load scripts that reference sandbox-restricted classes
and packages.

## Things you can try:
- Remove the flagged imports automatically:
~~~
$ vslice check --fix
~~~

- Use the funkin wrappers (e.g. ` + "`funkin.util.FileUtil`" + `) instead of the raw classes`,
		docLinks: []HttpLink{funkinModDocs},
		extLinks: []HttpLink{hscriptDocs},
	}

	invalidMetaIssue = &Issue{
		id: InvalidMetaId,
		mdMsg: `
# Invalid _polymod_meta.json!

Polymod needs a title, an api_version and a mod_version. Versions must be
full semantic versions such as 1.0.0.

## Example:
~~~json
{
  "title": "My Mod",
  "api_version": "0.7.0",
  "mod_version": "1.0.0"
}
~~~`,
		docLinks: []HttpLink{polymodDocs},
		extLinks: []HttpLink{semverSpecLink},
	}

	unknownScriptKindIssue = &Issue{
		id: UnknownScriptKindId,
		mdMsg: `
# Unknown script kind!

## Things you can try:
- List the available kinds:
~~~
$ vslice new --help
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Things you can try:
- Check file/directory permissions
- Run vslice from a directory you own`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		librariesConfigNotFoundIssue.Id(): librariesConfigNotFoundIssue,
		librariesConfigInvalidIssue.Id():  librariesConfigInvalidIssue,
		libraryDownloadFailedIssue.Id():   libraryDownloadFailedIssue,
		libraryMergeFailedIssue.Id():      libraryMergeFailedIssue,
		cacheDirUnavailableIssue.Id():     cacheDirUnavailableIssue,
		projectNotFoundIssue.Id():         projectNotFoundIssue,
		buildFailedIssue.Id():             buildFailedIssue,
		blacklistedImportIssue.Id():       blacklistedImportIssue,
		invalidMetaIssue.Id():             invalidMetaIssue,
		unknownScriptKindIssue.Id():       unknownScriptKindIssue,
		permissionDeniedIssue.Id():        permissionDeniedIssue,
	}
)

// Values returns every known issue ordered by id.
func Values() []*Issue {
	ids := make([]Id, 0, len(issues))
	for id := range issues {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}

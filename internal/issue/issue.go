// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ManifestNotFoundId Id = iota + 1
	ManifestMalformedId
	RootModuleNotFoundId
	SubmoduleNotFoundId
	CyclicModuleId
	DuplicateModuleId
	CompilerNotFoundId
	BuildFailedId
	TestBenchTimeoutId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links shown under "See also"
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
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No bellows.toml found!

We searched from the current directory up to the filesystem root and could
not find a project manifest.

## Things you can try:
- Create a new project:
~~~
$ bellows init my_project
~~~

- Or move into an existing project before running bellows:
~~~
$ cd /path/to/your/project
$ bellows build
~~~

## Example bellows.toml:
~~~toml
[package]
name = "Simple"
version = "0.1.0"
~~~`,
	}

	manifestMalformedIssue = &Issue{
		id: ManifestMalformedId,
		mdMsg: `
# Failed to parse bellows.toml!

Your manifest contains syntax errors or is missing a required field.

## Required fields:
- ` + "`package.name`" + ` - the package (and root module) name
- ` + "`package.version`" + ` - the package version

## Example of a valid manifest:
~~~toml
[package]
name = "Simple"
version = "0.1.0"
~~~`,
	}

	rootModuleNotFoundIssue = &Issue{
		id: RootModuleNotFoundId,
		mdMsg: `
# Root module not found!

The manifest names a package whose root source file does not exist.
For a package named ` + "`Simple`" + `, bellows expects ` + "`src/Simple.bsv`" + `.

## Things you can try:
- Check that ` + "`package.name`" + ` in bellows.toml matches the file under src/
- Create the root module file:
~~~
$ ls src/
~~~`,
	}

	submoduleNotFoundIssue = &Issue{
		id: SubmoduleNotFoundId,
		mdMsg: `
# Submodule not found!

A ` + "`//!submodule <name>`" + ` directive names a module with no source file.
A submodule declared in a file at directory D must live at ` + "`D/<name>/<name>.bsv`" + `.

## Things you can try:
- Check the directive for typos
- Create the missing directory and source file
- Remove the stale directive`,
	}

	cyclicModuleIssue = &Issue{
		id: CyclicModuleId,
		mdMsg: `
# Cyclic module reference!

Submodule directives form a cycle, so the module tree cannot be built.
The error message names the exact chain, e.g. ` + "`Simple -> ping -> pong -> ping`" + `.

## Things you can try:
- Break the cycle by removing one of the directives
- Hoist the shared code into a module both sides can declare`,
	}

	duplicateModuleIssue = &Issue{
		id: DuplicateModuleId,
		mdMsg: `
# Duplicate module!

One module identifier resolves to two different source files. Module
identifiers are unique across the whole tree.

## Things you can try:
- Rename one of the modules
- If both directives should point at the same code, move it so both
  resolve to one path`,
	}

	compilerNotFoundIssue = &Issue{
		id: CompilerNotFoundId,
		mdMsg: `
# Bluespec compiler not found!

bellows drives the external ` + "`bsc`" + ` compiler, which is not on your PATH.

## Things you can try:
- Install the Bluespec toolchain: https://github.com/B-Lang-org/bsc
- Point bellows at your installation:
~~~toml
# ~/.config/bellows/config.toml
[toolchain]
bsc = "/opt/bsc/bin/bsc"
~~~`,
	}

	buildFailedIssue = &Issue{
		id: BuildFailedId,
		mdMsg: `
# Build failed!

The external compiler exited non-zero. Its captured output is shown above.

## Things you can try:
- Fix the first compiler error; later ones are often knock-on effects
- Re-run with verbose mode for the full invocation:
~~~
$ bellows --verbose build
~~~`,
	}

	testBenchTimeoutIssue = &Issue{
		id: TestBenchTimeoutId,
		mdMsg: `
# Test bench timed out!

A simulation exceeded its wall-clock budget and was terminated. A bench that
never calls ` + "`$finish`" + ` will always time out.

## Things you can try:
- Make sure the bench finishes:
~~~
rule done;
    $display(">>>PASS");
    $finish();
endrule
~~~

- Raise the budget for long simulations:
~~~
$ bellows test --timeout 30m
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the bellows configuration file.

## Configuration file locations:
- Linux: ~/.config/bellows/config.toml
- macOS: ~/Library/Application Support/bellows/config.toml
- Windows: %APPDATA%\bellows\config.toml

## Things you can try:
- Check the TOML syntax
- Remove the config file to use defaults

## Example configuration:
~~~toml
[toolchain]
bsc = "bsc"

[test]
jobs = 4
timeout = "5m"
~~~`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():   manifestNotFoundIssue,
		manifestMalformedIssue.Id():  manifestMalformedIssue,
		rootModuleNotFoundIssue.Id(): rootModuleNotFoundIssue,
		submoduleNotFoundIssue.Id():  submoduleNotFoundIssue,
		cyclicModuleIssue.Id():       cyclicModuleIssue,
		duplicateModuleIssue.Id():    duplicateModuleIssue,
		compilerNotFoundIssue.Id():   compilerNotFoundIssue,
		buildFailedIssue.Id():        buildFailedIssue,
		testBenchTimeoutIssue.Id():   testBenchTimeoutIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}

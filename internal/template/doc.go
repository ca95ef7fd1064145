// Package template materializes agent configuration into a repository.
//
// Fixed-file mode copies AGENTS_TEMPLATE.md and AGENTS_STRUCTURE.md from a
// template directory into the repository root. Template-repository mode
// shallow-clones a template repository into a temporary directory, strips
// its .git metadata and overlays the whole tree onto the repository. An
// optional .agentboot.yaml manifest at the template root is validated against
// an embedded JSON schema and never copied.
package template

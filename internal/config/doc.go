// Package config resolves the configuration of the openphoto tools.
//
// Configuration is grouped in sections ("api", one section per tool,
// "logging"). Every key of a section is looked up in the following priority
// order, the first non-empty value wins:
//  1. Command-line flags explicitly given by the user
//  2. Environment variables (<PREFIX>_<SECTION>_<KEY>, e.g. OPENPHOTO_API_HOST)
//  3. INI config files, the --config file before the default one
//  4. Compiled defaults
//
// A [Root] is built in two phases: sections and keys are declared first
// ([NewRoot], [Root.AddSection], [Section.RegisterKey]), then the command line
// and config files are read ([Root.Parse]) and every section is resolved and
// validated ([Root.ResolveAll]). The typed api settings ([Root.API]) are the
// input of the API client.
package config

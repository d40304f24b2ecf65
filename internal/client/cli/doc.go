// Package cli is the QuoteKeeper command-line front end. It runs either a
// single command taken from the process arguments or an interactive loop
// reading commands from stdin.
//
// Commands:
//
//	list [-force] <kind>            list profiles, quotes or templates
//	show <kind> <id>                print one full record
//	create-quote <title>            add a quote
//	create-template <name>          add a template
//	create-profile <name>           add a profile with default branding
//	rename-template <id> <name>     rename a template
//	attach-pdf <quote-id> <url>     record the generated document of a quote
//	delete <kind> <id>              delete a record and its document
//	edit-profile <id>               start editing a profile's branding
//	set <field> <value>             change a field of the edited profile
//	save                            save the edited profile now
//	status                          show the auto-save state
//	help | exit | quit
package cli

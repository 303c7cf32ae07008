package runner

import (
	"github.com/projectdiscovery/gologger"
	updateutils "github.com/projectdiscovery/utils/update"
)

var banner = (`
     __        __
 ___/ /__ ___ / /________
/ _  / _ '/ (_-</ __/ __/
\_,_/\_,_/_/___/\__/_/
`)

var version = "v0.0.1"

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tpfsalab.org\n\n")
}

// GetUpdateCallback returns a callback function that updates skstr.
func GetUpdateCallback() func() {
	return func() {
		showBanner()
		updateutils.GetUpdateToolCallback("skstr", version)()
	}
}

// Go to a pdb website and download coordinates. The main point is to
// visit the web page and return a reader that can be used like the
// file readers.

package pdb

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andrew-torda/dssp/pdb/zwrap"
)

var urls = []struct {
	urlBase   string
	urlSuffix string
}{
	{"https://files.rcsb.org/download/", ".cif.gz"},
	{"https://www.ebi.ac.uk/pdbe/entry-files/download/", ".cif"},
	{"https://ftp.pdbj.org/pub/pdb/data/structures/all/mmCIF/", ".cif.gz"},
}

const nPDBsites = 3

var client = &http.Client{Timeout: 2 * time.Minute}

// getHTTP is given a four letter pdb code. It goes to the protein data
// bank and should return a reader.
// There are three sites for structures. If siteNum is too big, we use a
// modulo to wrap it around, rather than generate an error. This makes
// it easier to cycle through them.
// Sites return normal or gzipped data. zwrap decides which.
func getHTTP(acqCode string, siteNum int) (io.ReadCloser, error) {
	if len(acqCode) != 4 {
		return nil, errors.New("acq code should be four char, not " + acqCode)
	}
	site := urls[siteNum%len(urls)]
	url := site.urlBase + acqCode + site.urlSuffix
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("wanted %s using %s, got %s", acqCode, url, resp.Status)
	}
	return zwrap.Wrap(resp.Body)
}

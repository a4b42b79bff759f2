package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

// symsRenderer prints all tickers in a single comma-separated line.
type symsRenderer struct{}

func NewSymsRenderer() Renderer {
	return symsRenderer{}
}

func (symsRenderer) Render(w io.Writer, rows []types.Listing, _ RenderOptions) error {
	symbols := make([]string, 0, len(rows))
	for _, l := range rows {
		sym := strings.TrimSpace(l.Record.Ticker)
		if sym == "" {
			continue
		}
		symbols = append(symbols, sym)
	}
	_, err := fmt.Fprintln(w, strings.Join(symbols, ","))
	return err
}

// Package static backs rows with a fixed list of urls.
package static

import (
	"github.com/pkg/errors"
)

// Static is an ordered, fixed list of urls.
type Static struct {
	name string
	urls []string
}

func New(name string, urls []string) *Static {

	return &Static{
		name: name,
		urls: append([]string{}, urls...),
	}
}

func (st *Static) Name() string {
	return st.name
}

func (st *Static) RowCount() (int, error) {
	return len(st.urls), nil
}

func (st *Static) RowData(idx int) (url string, err error) {

	if idx < 0 || idx >= len(st.urls) {
		err = errors.Errorf("index %d is out of bounds of %d urls", idx, len(st.urls))
		return
	}

	url = st.urls[idx]
	return
}

// GetPage returns up to size urls starting at offset
func (st *Static) GetPage(offset, size int) (urls []string, err error) {

	if offset < 0 || size < 0 {
		err = errors.Errorf("bad page offset %d size %d", offset, size)
		return
	}

	start := min(offset, len(st.urls))
	end := min(start+size, len(st.urls))
	urls = append([]string{}, st.urls[start:end]...)
	return
}

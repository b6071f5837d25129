package debugui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/replay"
)

// ReplayBrowser lists the sessions in a store and hands the chosen one to Open.
type ReplayBrowser struct {
	Store replay.Store
	Open  func(*replay.Session)

	ids         []string
	err         error
	filterText  string
	selected    string
	perPage     int
	currentPage int
}

func NewReplayBrowser(store replay.Store, perPage int, open func(*replay.Session)) *ReplayBrowser {
	rb := &ReplayBrowser{Store: store, Open: open, perPage: perPage}
	rb.Refresh()
	return rb
}

// Refresh reloads the id list from the store.
func (rb *ReplayBrowser) Refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	rb.ids, rb.err = rb.Store.List(ctx)
}

func (rb *ReplayBrowser) filtered() []string {
	if rb.filterText == "" {
		return rb.ids
	}
	needle := strings.ToLower(rb.filterText)
	var out []string
	for _, id := range rb.ids {
		if strings.Contains(strings.ToLower(id), needle) {
			out = append(out, id)
		}
	}
	return out
}

func (rb *ReplayBrowser) Render() {
	if !imgui.BeginV("Replays", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &rb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Refresh") {
		rb.Refresh()
	}
	if rb.err != nil {
		imgui.TextColored(imgui.NewVec4(1.0, 0.4, 0.4, 1.0), rb.err.Error())
	}

	ids := rb.filtered()
	totalPages := max(1, (len(ids)+rb.perPage-1)/rb.perPage)
	rb.currentPage = min(rb.currentPage, totalPages-1)
	start := rb.currentPage * rb.perPage
	end := min(start+rb.perPage, len(ids))

	for _, id := range ids[start:end] {
		if imgui.SelectableBoolV(id, rb.selected == id, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
			rb.selected = id
		}
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d replays)", rb.currentPage+1, totalPages, len(ids)))
	imgui.SameLine()
	if imgui.Button("Prev") && rb.currentPage > 0 {
		rb.currentPage--
	}
	imgui.SameLine()
	if imgui.Button("Next") && rb.currentPage < totalPages-1 {
		rb.currentPage++
	}

	if rb.selected != "" && imgui.Button("Watch") {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		s, err := rb.Store.Load(ctx, rb.selected)
		cancel()
		rb.err = err
		if err == nil && rb.Open != nil {
			rb.Open(s)
		}
	}

	imgui.End()
}

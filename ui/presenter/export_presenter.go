package presenter

import (
	"github.com/soocke/multicrop-go/domain/export"
	"github.com/soocke/multicrop-go/ui/model"
)

// ExportView displays the ordered exported crops.
type ExportView interface {
	UpdateExports(list []export.Extracted)
}

// ExportPresenter moves freshly exported image lists from the model to the
// view on the UI tick. The export pipeline publishes from a timer goroutine;
// Take hands each publication over exactly once.
type ExportPresenter struct {
	model *model.ExportModel
	view  ExportView
}

func NewExportPresenter(m *model.ExportModel, view ExportView) *ExportPresenter {
	return &ExportPresenter{model: m, view: view}
}

// Tick pushes the latest export list to the view when it changed.
func (p *ExportPresenter) Tick() {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	if list, changed := p.model.Take(); changed {
		p.view.UpdateExports(list)
	}
}

package app

import (
	"github.com/vk/kiwigraph/internal/gfx"
	"github.com/vk/kiwigraph/internal/registry"
	"github.com/vk/kiwigraph/modules/color"
	"github.com/vk/kiwigraph/modules/float_math"
	"github.com/vk/kiwigraph/modules/postfx"
	"github.com/vk/kiwigraph/modules/print"
	"github.com/vk/kiwigraph/modules/sources"
	"github.com/vk/kiwigraph/modules/values"
)

// coreModules is the list of modules compiled into the kiwi binary. Value
// types come first since every other module resolves layouts against them.
func (a *App) coreModules() []registry.Module {
	return []registry.Module{
		&values.Module{},
		&sources.Module{},
		&float_math.Module{},
		&color.Module{},
		&print.Module{Out: a.outW},
		&postfx.Module{
			Device:   a.device,
			Viewport: func() gfx.Viewport { return a.config.Viewport },
		},
	}
}

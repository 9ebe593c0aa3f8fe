package iconset

import "go.trai.ch/ikon/internal/core/domain"

// resolve walks the alias chain of name. The caller holds s.mu.
func (s *IconSet) resolve(name string) domain.Lookup {
	if _, ok := s.missing[name]; ok {
		return domain.Lookup{State: domain.KnownMissing}
	}

	var chain []domain.AliasData
	current := name
	for range domain.MaxAliasDepth + 1 {
		if root, ok := s.icons[current]; ok {
			return domain.Lookup{State: domain.Found, Icon: Compose(root, chain)}
		}
		alias, ok := s.aliases[current]
		if !ok {
			if _, missing := s.missing[current]; missing {
				return domain.Lookup{State: domain.KnownMissing}
			}
			return domain.Lookup{State: domain.Unknown}
		}
		chain = append(chain, alias)
		current = alias.Parent
	}
	return domain.Lookup{State: domain.KnownMissing}
}

// Compose applies an alias chain, ordered from the requested alias to the one
// closest to root, on top of root. Transformations are merged from root outwards;
// a dimension is taken from the nearest alias that redefines it.
func Compose(root *domain.Icon, chain []domain.AliasData) *domain.Icon {
	out := *root
	for i := len(chain) - 1; i >= 0; i-- {
		alias := chain[i]
		out.Transformations = out.Transformations.Merge(alias.Optional.Transformations())
		if alias.Left != nil {
			out.Left = *alias.Left
		}
		if alias.Top != nil {
			out.Top = *alias.Top
		}
		if alias.Width != nil {
			out.Width = *alias.Width
		}
		if alias.Height != nil {
			out.Height = *alias.Height
		}
	}
	return &out
}

// newIcon builds a root icon, filling unset dimensions from the set defaults and then the global defaults.
func newIcon(data domain.IconData, defaults domain.Dimensions) *domain.Icon {
	dims := data.Dimensions.Or(defaults)
	icon := &domain.Icon{
		Body:            data.Body,
		Width:           domain.DefaultIconSize,
		Height:          domain.DefaultIconSize,
		Transformations: data.Optional.Transformations(),
	}
	if dims.Left != nil {
		icon.Left = *dims.Left
	}
	if dims.Top != nil {
		icon.Top = *dims.Top
	}
	if dims.Width != nil {
		icon.Width = *dims.Width
	}
	if dims.Height != nil {
		icon.Height = *dims.Height
	}
	return icon
}

func exportIcon(icon *domain.Icon) domain.IconData {
	left, top, width, height := icon.Left, icon.Top, icon.Width, icon.Height
	data := domain.IconData{
		Body: icon.Body,
		Dimensions: domain.Dimensions{
			Width:  &width,
			Height: &height,
		},
	}
	if left != 0 {
		data.Left = &left
	}
	if top != 0 {
		data.Top = &top
	}
	if icon.Rotate != 0 {
		rotate := icon.Rotate
		data.Rotate = &rotate
	}
	if icon.HFlip {
		hFlip := true
		data.HFlip = &hFlip
	}
	if icon.VFlip {
		vFlip := true
		data.VFlip = &vFlip
	}
	return data
}

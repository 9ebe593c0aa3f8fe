package iconset_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/engine/iconset"
)

func TestResolve_AliasChain(t *testing.T) {
	r := iconset.NewRegistry(false)
	_, err := r.AddSet("", mdiSet())
	require.NoError(t, err)

	got, ok := r.Resolve(domain.MustParseIconName("mdi:arrow-left-up"))
	require.True(t, ok)

	want := &domain.Icon{
		Body:   `<path d="M4 12h16"/>`,
		Width:  20,
		Height: 10,
		Transformations: domain.Transformations{
			HFlip:  true,
			Rotate: 3,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}

	_, ok = r.Resolve(domain.MustParseIconName("mdi:gone"))
	assert.False(t, ok)
}

func TestResolve_DescendantDimensionsWin(t *testing.T) {
	r := iconset.NewRegistry(false)
	_, err := r.AddSet("", &domain.IconSetData{
		Prefix: "x",
		Icons: map[string]domain.IconData{
			"base": {Body: "<g/>", Dimensions: domain.Dimensions{Left: ptr(1.0), Width: ptr(30.0), Height: ptr(20.0)}},
		},
		Aliases: map[string]domain.AliasData{
			"wide":   {Parent: "base", Dimensions: domain.Dimensions{Width: ptr(40.0)}},
			"narrow": {Parent: "wide", Dimensions: domain.Dimensions{Width: ptr(10.0), Top: ptr(2.0)}},
			"child":  {Parent: "narrow"},
		},
	})
	require.NoError(t, err)

	got, ok := r.Resolve(domain.MustParseIconName("x:child"))
	require.True(t, ok)
	assert.Equal(t, [4]float64{1, 2, 10, 20}, got.Box())

	got, ok = r.Resolve(domain.MustParseIconName("x:wide"))
	require.True(t, ok)
	assert.Equal(t, [4]float64{1, 0, 40, 20}, got.Box())
}

func TestResolve_MatchesManualComposition(t *testing.T) {
	deltas := []domain.Transformations{
		{HFlip: true},
		{Rotate: 1},
		{VFlip: true, Rotate: 3},
		{HFlip: true, VFlip: true, Rotate: 2},
		{Rotate: 1},
		{},
		{VFlip: true},
	}

	for depth := 1; depth <= len(deltas); depth++ {
		t.Run(fmt.Sprintf("depth %d", depth), func(t *testing.T) {
			data := &domain.IconSetData{
				Prefix:  "chain",
				Icons:   map[string]domain.IconData{"root": {Body: "<g/>", Optional: domain.Optional{Rotate: ptr(1)}}},
				Aliases: map[string]domain.AliasData{},
			}

			parent := "root"
			want := domain.Transformations{Rotate: 1}
			for i := range depth {
				d := deltas[i]
				name := fmt.Sprintf("a%d", i)
				data.Aliases[name] = domain.AliasData{
					Parent: parent,
					Optional: domain.Optional{
						HFlip:  ptr(d.HFlip),
						VFlip:  ptr(d.VFlip),
						Rotate: ptr(d.Rotate),
					},
				}
				want = want.Merge(d)
				parent = name
			}

			r := iconset.NewRegistry(false)
			_, err := r.AddSet("", data)
			require.NoError(t, err)

			got, ok := r.Resolve(domain.IconName{Prefix: "chain", Name: parent})
			require.True(t, ok)
			assert.Equal(t, want, got.Transformations)
		})
	}
}

func TestCompose_DoesNotMutateRoot(t *testing.T) {
	root := &domain.Icon{Body: "<g/>", Width: 16, Height: 16}
	out := iconset.Compose(root, []domain.AliasData{{Parent: "root", Optional: domain.Optional{HFlip: ptr(true)}}})

	assert.True(t, out.HFlip)
	assert.False(t, root.HFlip)
}

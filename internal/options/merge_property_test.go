package options

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func genOptions() *rapid.Generator[Options] {
	name := rapid.StringMatching(`[a-z0-9]{0,6}`)
	return rapid.Custom(func(t *rapid.T) Options {
		o := Options{
			IWAD:      name.Draw(t, "iwad"),
			Skill:     rapid.SampledFrom([]string{"", "baby", "hard", "nightmare"}).Draw(t, "skill"),
			Files:     rapid.SliceOfN(name, 0, 3).Draw(t, "files"),
			Extra:     rapid.SliceOfN(name, 0, 3).Draw(t, "extra"),
			Complevel: rapid.SampledFrom([]string{"", "boom", "mbf21"}).Draw(t, "complevel"),
		}
		if rapid.Bool().Draw(t, "setWarp") {
			v := rapid.IntRange(1, 255).Draw(t, "warp")
			o.Warp = &v
		}
		if rapid.Bool().Draw(t, "setPistolstart") {
			v := rapid.Bool().Draw(t, "pistolstart")
			o.Pistolstart = &v
		}
		return o
	})
}

func TestMerge_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genOptions().Draw(t, "a")
		b := genOptions().Draw(t, "b")
		m := Merge(a, b)

		// Lists accumulate in layer order.
		require.Equal(t, len(a.Files)+len(b.Files), len(m.Files))
		require.Equal(t, len(a.Extra)+len(b.Extra), len(m.Extra))
		for i, f := range b.Files {
			require.Equal(t, f, m.Files[len(a.Files)+i])
		}

		// A scalar set in the upper layer always wins.
		if b.IWAD != "" {
			require.Equal(t, b.IWAD, m.IWAD)
		} else {
			require.Equal(t, a.IWAD, m.IWAD)
		}
		if b.Warp != nil {
			require.Equal(t, *b.Warp, *m.Warp)
		} else {
			require.Equal(t, a.Warp, m.Warp)
		}
		if b.Pistolstart != nil {
			require.Equal(t, *b.Pistolstart, *m.Pistolstart)
		}

		// Merging with an empty layer changes nothing.
		require.Equal(t, Merge(a), Merge(a, Options{}))
	})
}

package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
	"github.com/davidsrrose/wordle-bot/internal/game"
	"github.com/davidsrrose/wordle-bot/internal/words"
)

func ariseBoard() feedback.Board {
	return feedback.Board{{
		feedback.Correct('A', 0),
		feedback.Correct('R', 1),
		feedback.Absent('I', 2),
		feedback.Present('S', 3),
		feedback.Correct('E', 4),
	}}
}

func TestFilterPool_AriseScenario(t *testing.T) {
	cs, err := feedback.Interpret(ariseBoard())
	require.NoError(t, err)
	pool := PoolOf("ARISE", "AROSE", "CRANE")

	tests := []struct {
		mode Mode
		want []string
	}{
		{ModeLegacy, []string{"AROSE"}},
		{ModePositional, []string{}},
		{ModeStrict, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got := FilterPool(pool, cs, tt.mode)
			assert.Equal(t, tt.want, got.Words())
		})
	}
	// the input pool is never mutated
	assert.Equal(t, 3, pool.Len())
}

func TestIsConsistent_Rules(t *testing.T) {
	cs, err := feedback.Interpret(ariseBoard())
	require.NoError(t, err)

	// AROSE passes rules 1 and 2 but has S at the excluded position 3.
	assert.True(t, IsConsistent("AROSE", cs, ModeLegacy))
	assert.False(t, IsConsistent("AROSE", cs, ModePositional))
	assert.False(t, IsConsistent("AROSE", cs, ModeStrict))

	// ARISE holds the absent I.
	for _, m := range []Mode{ModeLegacy, ModePositional, ModeStrict} {
		assert.False(t, IsConsistent("ARISE", cs, m), m.String())
		assert.False(t, IsConsistent("CRANE", cs, m), m.String())
		assert.False(t, IsConsistent("ARSE", cs, m), m.String())
	}

	// A hypothetical ARSTE satisfies everything positional.
	assert.True(t, IsConsistent("ARSTE", cs, ModePositional))
	assert.True(t, IsConsistent("ARSTE", cs, ModeStrict))
}

func TestIsConsistent_DuplicateLetters(t *testing.T) {
	// SPEED scored against ABIDE: S/P grey, first E yellow, second E grey, D yellow.
	row := game.Score("ABIDE", "SPEED")
	require.Equal(t, "BBYBY", row.Pattern())
	cs, err := feedback.Interpret(feedback.Board{row})
	require.NoError(t, err)

	assert.True(t, IsConsistent("ABIDE", cs, ModeStrict))
	assert.False(t, IsConsistent("ABIDE", cs, ModeLegacy), "legacy bans E outright")
	assert.False(t, IsConsistent("ABIDE", cs, ModePositional))

	// Exactly one E, never at positions 2 or 3.
	assert.False(t, IsConsistent("EDGEE", cs, ModeStrict))
	assert.False(t, IsConsistent("OLDER", cs, ModeStrict))
	assert.True(t, IsConsistent("DEIGN", cs, ModeStrict))
}

func TestFilterPool_Exhaustion(t *testing.T) {
	cs := feedback.NewConstraintSet()
	cs.MustInclude = cs.MustInclude.Add('Z')
	got := FilterPool(PoolOf("ABCDE"), cs, ModeStrict)
	assert.Equal(t, 0, got.Len())
	assert.Empty(t, got.Words())
}

func TestFilterPool_PreservesOrder(t *testing.T) {
	cs := feedback.NewConstraintSet()
	cs.MustInclude = feedback.LetterSetOf("A")
	pool := PoolOf("TRACE", "BLOND", "CRANE", "OCEAN", "SLATE")
	assert.Equal(t, []string{"TRACE", "CRANE", "OCEAN", "SLATE"}, FilterPool(pool, cs, ModeLegacy).Words())
}

// Plays many local games and checks, every turn and in every mode, that the
// pool never grows, that survivors satisfy the constraints, and that every
// dropped word fails them. In strict mode the true answer must never be dropped.
func TestFilterPool_Properties(t *testing.T) {
	dict, err := words.Default()
	require.NoError(t, err)
	d := NewDictionary(dict.Words)

	answers := []string{"CRANE", "ABIDE", "SPEED", "ROBOT", "EERIE", "ABBEY", "FLOOR", "QUEUE", "MAMMA", "GEESE"}
	for _, mode := range []Mode{ModeStrict, ModePositional, ModeLegacy} {
		for i, answer := range answers {
			if !dict.Contains(answer) {
				continue
			}
			strategy := NewSeededRandomStrategy(uint64(i))
			g, err := game.New(answer, nil)
			require.NoError(t, err)
			pool := NewPool(d)
			guess := DefaultOpeningWord

			for turn := 0; turn < 6 && !g.Finished; turn++ {
				_, _, err := g.ApplyGuess(guess)
				require.NoError(t, err)

				cs, err := feedback.Interpret(g.Board)
				require.NoError(t, err)
				next := FilterPool(pool, cs, mode)

				require.LessOrEqual(t, next.Len(), pool.Len())
				kept := map[string]bool{}
				for _, w := range next.Words() {
					kept[w] = true
					require.True(t, IsConsistent(w, cs, mode), "%s kept but inconsistent", w)
				}
				for _, w := range pool.Words() {
					if !kept[w] {
						require.False(t, IsConsistent(w, cs, mode), "%s dropped but consistent", w)
					}
				}
				if mode == ModeStrict {
					require.True(t, next.Contains(answer), "strict dropped the answer %s", answer)
				}

				pool = next
				if pool.Len() == 0 {
					break
				}
				guess = strategy.Pick(pool.Words())
			}
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeStrict, "STRICT": ModeStrict, "positional": ModePositional, " legacy ": ModeLegacy} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("fuzzy")
	assert.Error(t, err)
}

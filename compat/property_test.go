package compat

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/appdeploykit/compat-framework/param"
)

// propOp mirrors the shape of a typical catalog entry: a dead parameter, a
// rename, an inversion, and a list split.
func propOp() *Operation {
	return NewOperation("Do-Thing",
		NewDefinition("Invoke-NewThing", "4.0.0", ""),
		[]string{"Name", "Quiet", "Items", "Force"},
		[]Step{
			Drop("Legacy", "no longer used"),
			Rename("Label", "Name"),
			Invert("Loud", "Quiet"),
			Split("List", "Items", ","),
		},
		WithContinueOnError("ContinueOnError", true),
	)
}

// genBag generates arbitrary subsets of the legacy surface, including the
// dead parameter and the error-mode parameter.
func genBag() gopter.Gen {
	return gopter.CombineGens(
		gen.PtrOf(gen.AlphaString()),             // Label
		gen.PtrOf(gen.Bool()),                    // Loud
		gen.PtrOf(gen.RegexMatch(`[a-z,]{0,8}`)), // List
		gen.PtrOf(gen.Bool()),                    // Force
		gen.PtrOf(gen.Bool()),                    // Legacy
		gen.PtrOf(gen.Bool()),                    // ContinueOnError
	).Map(func(vals []any) param.Bag {
		bag := param.New()
		// gen.PtrOf yields an untyped nil for the "absent" case, so the
		// assertions must tolerate a failed conversion.
		if v, _ := vals[0].(*string); v != nil {
			bag = bag.With("Label", *v)
		}
		if v, _ := vals[1].(*bool); v != nil {
			bag = bag.With("Loud", *v)
		}
		if v, _ := vals[2].(*string); v != nil {
			bag = bag.With("List", *v)
		}
		if v, _ := vals[3].(*bool); v != nil {
			bag = bag.With("Force", *v)
		}
		if v, _ := vals[4].(*bool); v != nil {
			bag = bag.With("Legacy", *v)
		}
		if v, _ := vals[5].(*bool); v != nil {
			bag = bag.With("ContinueOnError", *v)
		}

		return bag
	})
}

func Test_Translate_Properties(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// translation is a pure function of its input
	properties.Property("repeated translation yields the same mapping", prop.ForAll(
		func(bag param.Bag) bool {
			first, err1 := Translate(propOp(), bag)
			second, err2 := Translate(propOp(), bag)
			if (err1 == nil) != (err2 == nil) {
				return false
			}
			if err1 != nil {
				return err1.Error() == err2.Error()
			}

			return first.Bag.Equal(second.Bag) &&
				first.ContinueOnError == second.ContinueOnError &&
				len(first.DeadNotices) == len(second.DeadNotices)
		},
		genBag(),
	))

	// the forwarded mapping is always a subset of the replacement's
	// accepted parameters
	properties.Property("forwarded names are accepted by the replacement", prop.ForAll(
		func(bag param.Bag) bool {
			op := propOp()
			tr, err := Translate(op, bag)
			if err != nil {
				return true
			}
			for _, name := range tr.Bag.Names() {
				if !op.acceptsParam(name) {
					return false
				}
			}

			return true
		},
		genBag(),
	))

	// a supplied dead parameter yields exactly one dead-parameter notice
	// and never reaches the forwarded mapping, regardless of value
	properties.Property("dead parameter dropped with one notice", prop.ForAll(
		func(bag param.Bag) bool {
			tr, err := Translate(propOp(), bag)
			if err != nil {
				return true
			}
			if tr.Bag.Has("Legacy") {
				return false
			}
			if bag.Has("Legacy") {
				return len(tr.DeadNotices) == 1
			}

			return len(tr.DeadNotices) == 0
		},
		genBag(),
	))

	// the caller's original mapping is never mutated
	properties.Property("input bag is never mutated", prop.ForAll(
		func(bag param.Bag) bool {
			before := bag.ToMap()
			_, _ = Translate(propOp(), bag)

			return bag.Equal(param.FromMap(before))
		},
		genBag(),
	))

	properties.TestingRun(t)
}

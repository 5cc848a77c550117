package expr

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

func mathMod(a, b float64) float64  { return math.Mod(a, b) }
func absFloat(a float64) float64    { return math.Abs(a) }
func powFloat(a, b float64) float64 { return math.Pow(a, b) }

type builtinFn func(ctx *evalContext, args []Value) (Value, error)

// builtins is the fixed-arity function table: arithmetic, trig, geometry,
// random, list and string functions (spec §4.1). Every entry validates
// its own arity and reports an arity mismatch as an ordinary error.
var builtins = map[string]builtinFn{
	// arithmetic
	"abs":   unaryMath(math.Abs),
	"sign":  unaryMath(func(f float64) float64 { return math.Copysign(boolToFloat(f != 0), f) }),
	"sqrt":  unaryMath(math.Sqrt),
	"floor": unaryMath(math.Floor),
	"ceil":  unaryMath(math.Ceil),
	"round": unaryMath(math.Round),
	"min":   func(_ *evalContext, args []Value) (Value, error) { return reduceMath(args, math.Min, math.Inf(1)) },
	"max":   func(_ *evalContext, args []Value) (Value, error) { return reduceMath(args, math.Max, math.Inf(-1)) },
	"sum":   func(_ *evalContext, args []Value) (Value, error) { return reduceMath(args, func(a, b float64) float64 { return a + b }, 0) },
	"mean": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) == 0 {
			return Value{}, fmt.Errorf("expr: mean() requires at least 1 argument")
		}
		total, err := reduceMath(args, func(a, b float64) float64 { return a + b }, 0)
		if err != nil {
			return Value{}, err
		}
		return Num(total.Number / float64(len(args))), nil
	},
	"clamp": func(_ *evalContext, args []Value) (Value, error) {
		v, lo, hi, err := numArgs3(args, "clamp")
		if err != nil {
			return Value{}, err
		}
		return Num(clamp(v, lo, hi)), nil
	},
	"mix": func(_ *evalContext, args []Value) (Value, error) {
		a, b, t, err := numArgs3(args, "mix")
		if err != nil {
			return Value{}, err
		}
		return Num(a + (b-a)*t), nil
	},

	// trig (degrees in, degrees out, matching the rest of the
	// attribute language which never works in radians)
	"sin": unaryMath(func(f float64) float64 { return math.Sin(f * math.Pi / 180) }),
	"cos": unaryMath(func(f float64) float64 { return math.Cos(f * math.Pi / 180) }),
	"tan": unaryMath(func(f float64) float64 { return math.Tan(f * math.Pi / 180) }),
	"asin": unaryMath(func(f float64) float64 { return math.Asin(f) * 180 / math.Pi }),
	"acos": unaryMath(func(f float64) float64 { return math.Acos(f) * 180 / math.Pi }),
	"atan": unaryMath(func(f float64) float64 { return math.Atan(f) * 180 / math.Pi }),
	"atan2": func(_ *evalContext, args []Value) (Value, error) {
		y, x, err := numArgs2(args, "atan2")
		if err != nil {
			return Value{}, err
		}
		return Num(math.Atan2(y, x) * 180 / math.Pi), nil
	},
	"degrees": unaryMath(func(f float64) float64 { return f * 180 / math.Pi }),
	"radians": unaryMath(func(f float64) float64 { return f * math.Pi / 180 }),

	// geometry
	"hypot": func(_ *evalContext, args []Value) (Value, error) {
		a, b, err := numArgs2(args, "hypot")
		if err != nil {
			return Value{}, err
		}
		return Num(math.Hypot(a, b)), nil
	},
	"dist": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 4 {
			return Value{}, fmt.Errorf("expr: dist() takes exactly 4 arguments (x1,y1,x2,y2)")
		}
		nums, err := allNumbers(args)
		if err != nil {
			return Value{}, err
		}
		return Num(math.Hypot(nums[2]-nums[0], nums[3]-nums[1])), nil
	},
	"bbox": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) == 0 {
			return Value{}, fmt.Errorf("expr: bbox() requires at least 1 argument")
		}
		x1, y1, x2, y2 := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
		for _, a := range args {
			b, err := boxOf(a)
			if err != nil {
				return Value{}, err
			}
			x1, y1 = math.Min(x1, b[0]), math.Min(y1, b[1])
			x2, y2 = math.Max(x2, b[2]), math.Max(y2, b[3])
		}
		return ListOf([]Value{Num(x1), Num(y1), Num(x2), Num(y2)}), nil
	},
	"union": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, fmt.Errorf("expr: union() takes exactly 2 arguments")
		}
		a, err := boxOf(args[0])
		if err != nil {
			return Value{}, err
		}
		b, err := boxOf(args[1])
		if err != nil {
			return Value{}, err
		}
		return ListOf([]Value{
			Num(math.Min(a[0], b[0])), Num(math.Min(a[1], b[1])),
			Num(math.Max(a[2], b[2])), Num(math.Max(a[3], b[3])),
		}), nil
	},
	"intersect": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, fmt.Errorf("expr: intersect() takes exactly 2 arguments")
		}
		a, err := boxOf(args[0])
		if err != nil {
			return Value{}, err
		}
		b, err := boxOf(args[1])
		if err != nil {
			return Value{}, err
		}
		x1, y1 := math.Max(a[0], b[0]), math.Max(a[1], b[1])
		x2, y2 := math.Min(a[2], b[2]), math.Min(a[3], b[3])
		if x1 > x2 || y1 > y2 {
			return ListOf(nil), nil
		}
		return ListOf([]Value{Num(x1), Num(y1), Num(x2), Num(y2)}), nil
	},

	// random
	"random": func(ctx *evalContext, args []Value) (Value, error) {
		if len(args) == 0 {
			return Num(float64(ctx.view.Random())), nil
		}
		if len(args) != 2 {
			return Value{}, fmt.Errorf("expr: random() takes 0 or 2 arguments")
		}
		return randIntValue(ctx, args)
	},
	"randint": func(ctx *evalContext, args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, fmt.Errorf("expr: randint() takes exactly 2 arguments")
		}
		return randIntValue(ctx, args)
	},
	"choice": func(ctx *evalContext, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, fmt.Errorf("expr: choice() takes exactly 1 argument")
		}
		list := asList(args[0])
		if len(list) == 0 {
			return Value{}, fmt.Errorf("expr: choice() of an empty list")
		}
		return list[ctx.view.RandInt(0, len(list)-1)], nil
	},

	// list
	"len": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, fmt.Errorf("expr: len() takes exactly 1 argument")
		}
		return Num(float64(len(asList(args[0])))), nil
	},
	"count": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, fmt.Errorf("expr: count() takes exactly 1 argument")
		}
		return Num(float64(len(asList(args[0])))), nil
	},
	"nth": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, fmt.Errorf("expr: nth() takes exactly 2 arguments")
		}
		list := asList(args[0])
		i, err := args[1].AsNumber()
		if err != nil {
			return Value{}, err
		}
		idx := int(i)
		if idx < 0 || idx >= len(list) {
			return Value{}, fmt.Errorf("expr: nth() index %d out of range (len %d)", idx, len(list))
		}
		return list[idx], nil
	},
	"head": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, fmt.Errorf("expr: head() takes exactly 1 argument")
		}
		list := asList(args[0])
		if len(list) == 0 {
			return Value{}, fmt.Errorf("expr: head() of an empty list")
		}
		return list[0], nil
	},
	"tail": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, fmt.Errorf("expr: tail() takes exactly 1 argument")
		}
		list := asList(args[0])
		if len(list) == 0 {
			return ListOf(nil), nil
		}
		return ListOf(append([]Value(nil), list[1:]...)), nil
	},
	"join": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, fmt.Errorf("expr: join() takes exactly 2 arguments")
		}
		sep := args[0].AsString()
		list := asList(args[1])
		parts := make([]string, len(list))
		for i, v := range list {
			parts[i] = v.AsString()
		}
		return Str(strings.Join(parts, sep)), nil
	},
	"split": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, fmt.Errorf("expr: split() takes exactly 2 arguments")
		}
		sep := args[0].AsString()
		parts := strings.Split(args[1].AsString(), sep)
		out := make([]Value, len(parts))
		for i, p := range parts {
			out[i] = Str(p)
		}
		return ListOf(out), nil
	},
	"sort": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, fmt.Errorf("expr: sort() takes exactly 1 argument")
		}
		list := append([]Value(nil), asList(args[0])...)
		sort.Slice(list, func(i, j int) bool {
			fi, erri := list[i].AsNumber()
			fj, errj := list[j].AsNumber()
			if erri == nil && errj == nil {
				return fi < fj
			}
			return list[i].AsString() < list[j].AsString()
		})
		return ListOf(list), nil
	},

	// logic
	"if": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 3 {
			return Value{}, fmt.Errorf("expr: if() takes exactly 3 arguments")
		}
		if args[0].AsBool() {
			return args[1], nil
		}
		return args[2], nil
	},
	"not": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, fmt.Errorf("expr: not() takes 1 argument")
		}
		return boolValue(!args[0].AsBool()), nil
	},
	"eq": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 2 {
			return Value{}, fmt.Errorf("expr: eq() takes 2 arguments")
		}
		return boolValue(args[0].AsString() == args[1].AsString()), nil
	},

	// strings
	"str": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, fmt.Errorf("expr: str() takes exactly 1 argument")
		}
		return Str(args[0].AsString()), nil
	},
	"fmt": func(_ *evalContext, args []Value) (Value, error) {
		if len(args) == 0 {
			return Value{}, fmt.Errorf("expr: fmt() requires at least 1 argument (a format string)")
		}
		rest := make([]any, len(args)-1)
		for i, a := range args[1:] {
			rest[i] = a.AsString()
		}
		return Str(fmt.Sprintf(args[0].AsString(), rest...)), nil
	},
	"concat": func(_ *evalContext, args []Value) (Value, error) {
		var b strings.Builder
		for _, a := range args {
			b.WriteString(a.AsString())
		}
		return Str(b.String()), nil
	},
	"upper": stringFn(strings.ToUpper),
	"lower": stringFn(strings.ToLower),
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func unaryMath(f func(float64) float64) builtinFn {
	return func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, fmt.Errorf("expr: function takes exactly 1 argument, got %d", len(args))
		}
		v, err := args[0].AsNumber()
		if err != nil {
			return Value{}, err
		}
		return Num(f(v)), nil
	}
}

func stringFn(f func(string) string) builtinFn {
	return func(_ *evalContext, args []Value) (Value, error) {
		if len(args) != 1 {
			return Value{}, fmt.Errorf("expr: function takes exactly 1 argument, got %d", len(args))
		}
		return Str(f(args[0].AsString())), nil
	}
}

func reduceMath(args []Value, f func(a, b float64) float64, identity float64) (Value, error) {
	if len(args) == 0 {
		return Value{}, fmt.Errorf("expr: function requires at least 1 argument")
	}
	acc := identity
	for _, a := range args {
		v, err := a.AsNumber()
		if err != nil {
			return Value{}, err
		}
		acc = f(acc, v)
	}
	return Num(acc), nil
}

func numArgs2(args []Value, name string) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expr: %s() takes exactly 2 arguments", name)
	}
	nums, err := allNumbers(args)
	if err != nil {
		return 0, 0, err
	}
	return nums[0], nums[1], nil
}

func numArgs3(args []Value, name string) (float64, float64, float64, error) {
	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("expr: %s() takes exactly 3 arguments", name)
	}
	nums, err := allNumbers(args)
	if err != nil {
		return 0, 0, 0, err
	}
	return nums[0], nums[1], nums[2], nil
}

func allNumbers(args []Value) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := a.AsNumber()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// randIntValue draws a uniform integer in [a,b] inclusive from the
// document RNG, backing both random(a,b) and randint(a,b).
func randIntValue(ctx *evalContext, args []Value) (Value, error) {
	lo, hi, err := numArgs2(args, "randint")
	if err != nil {
		return Value{}, err
	}
	return Num(float64(ctx.view.RandInt(int(lo), int(hi)))), nil
}

// asList normalizes a Value to a flat slice: a List value as-is, any
// other value as a single-element slice (spec §9: "a flatten() contract
// is called at every function-call boundary").
func asList(v Value) []Value {
	if v.Kind == KindList {
		return v.List
	}
	return []Value{v}
}

// boxOf reads a Value as a 4-element [x1,y1,x2,y2] box tuple, as
// produced by a bare element reference or a prior bbox()/union() call.
func boxOf(v Value) ([4]float64, error) {
	list := asList(v)
	if len(list) != 4 {
		return [4]float64{}, fmt.Errorf("expr: expected a 4-element box tuple, got %d element(s)", len(list))
	}
	var out [4]float64
	for i, e := range list {
		n, err := e.AsNumber()
		if err != nil {
			return [4]float64{}, err
		}
		out[i] = n
	}
	return out, nil
}

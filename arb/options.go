package arb

import "github.com/gogpu/arbconv/ir"

// optionInfo describes an OPTION recognised by the parser.
type optionInfo struct {
	option ir.Option
	stages ir.StageMask
	// group is non-zero for mutually exclusive options.
	group uint8
}

const (
	groupNone uint8 = iota
	groupPrecision
	groupFog
)

// programOptions is the static table of supported OPTION names.
var programOptions = map[string]optionInfo{
	"ARB_precision_hint_fastest": {ir.OptionPrecisionFastest, ir.FragmentOnly, groupPrecision},
	"ARB_precision_hint_nicest":  {ir.OptionPrecisionNicest, ir.FragmentOnly, groupPrecision},
	"ARB_fog_exp":                {ir.OptionFogExp, ir.FragmentOnly, groupFog},
	"ARB_fog_exp2":               {ir.OptionFogExp2, ir.FragmentOnly, groupFog},
	"ARB_fog_linear":             {ir.OptionFogLinear, ir.FragmentOnly, groupFog},
	"ARB_draw_buffers":           {ir.OptionDrawBuffers, ir.FragmentOnly, groupNone},
	"ARB_position_invariant":     {ir.OptionPositionInvariant, ir.VertexOnly, groupNone},
}

// enableOption adds the named option to set. It reports an error message
// when the option is unknown, unavailable in the stage or conflicts with an
// option already enabled.
func enableOption(set ir.OptionSet, name string, stage ir.Stage) (ir.OptionSet, string) {
	info, ok := programOptions[name]
	if !ok {
		return set, "unknown program option " + name
	}
	if !info.stages.Allows(stage) {
		return set, "option " + name + " is not available in " + stage.String() + " programs"
	}
	if info.group != groupNone {
		for other, oi := range programOptions {
			if oi.group == info.group && oi.option != info.option && set.Has(oi.option) {
				return set, "option " + name + " conflicts with " + other
			}
		}
	}
	return set.With(info.option), ""
}

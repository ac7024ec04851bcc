package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"instancing-viewer/internal/grid"
	"instancing-viewer/internal/host"
)

// Variable keys declared to the host.
const (
	KeyCubeSize   = "cube_size"
	KeyResolution = "resolution"
	KeyStrategy   = "render_strategy"
)

var (
	ErrUnknownCubeSize     = errors.New("cube size not in allowed set")
	ErrUnknownResolution   = errors.New("resolution not in allowed set")
	ErrMalformedResolution = errors.New("resolution is not WIDTHxHEIGHT")
)

// CubeSizes are the allowed grid edge lengths, default first.
var CubeSizes = []int{1, 2, 4, 8, 16, 32, 64, 128}

// Resolutions are the allowed internal resolutions, default first.
var Resolutions = []Resolution{
	{640, 480},
	{320, 240},
	{960, 720},
	{1280, 960},
	{1600, 1200},
	{1920, 1440},
}

// Strategies are the allowed render strategies, default first.
var Strategies = []grid.Strategy{grid.Instanced, grid.Expanded}

// Resolution is a viewport size in pixels.
type Resolution struct {
	Width, Height int
}

func (r Resolution) String() string { return fmt.Sprintf("%dx%d", r.Width, r.Height) }

// Aspect is width over height.
func (r Resolution) Aspect() float32 { return float32(r.Width) / float32(r.Height) }

// ParseResolution splits "WIDTHxHEIGHT". Both sides must be positive
// decimal integers; anything else is ErrMalformedResolution.
func ParseResolution(s string) (Resolution, error) {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return Resolution{}, fmt.Errorf("%q: %w", s, ErrMalformedResolution)
	}
	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return Resolution{}, fmt.Errorf("%q: %w", s, ErrMalformedResolution)
	}
	return Resolution{Width: width, Height: height}, nil
}

// MaxResolution is the largest allowed resolution.
func MaxResolution() Resolution {
	best := Resolutions[0]
	for _, r := range Resolutions[1:] {
		if r.Width*r.Height > best.Width*best.Height {
			best = r
		}
	}
	return best
}

// Options is the typed grid configuration.
type Options struct {
	CubeSize   int
	Resolution Resolution
	Strategy   grid.Strategy
}

// Default returns the first listed value of every option.
func Default() Options {
	return Options{
		CubeSize:   CubeSizes[0],
		Resolution: Resolutions[0],
		Strategy:   Strategies[0],
	}
}

// GridChanged reports whether the GPU grid must be rebuilt to go from o to n.
func (o Options) GridChanged(n Options) bool {
	return o.CubeSize != n.CubeSize || o.Strategy != n.Strategy
}

// Variables is the schema declared to the host.
func Variables() []host.Variable {
	sizes := make([]string, len(CubeSizes))
	for i, n := range CubeSizes {
		sizes[i] = strconv.Itoa(n)
	}
	res := make([]string, len(Resolutions))
	for i, r := range Resolutions {
		res[i] = r.String()
	}
	strategies := make([]string, len(Strategies))
	for i, s := range Strategies {
		strategies[i] = s.String()
	}
	return []host.Variable{
		{Key: KeyCubeSize, Value: "Cube size; " + strings.Join(sizes, "|")},
		{Key: KeyResolution, Value: "Internal resolution; " + strings.Join(res, "|")},
		{Key: KeyStrategy, Value: "Render strategy; " + strings.Join(strategies, "|")},
	}
}

// Choices returns the legal values of a declared variable, or nil.
func Choices(v host.Variable) []string {
	_, list, ok := strings.Cut(v.Value, "; ")
	if !ok {
		return nil
	}
	return strings.Split(list, "|")
}

// LookupFunc returns the host's current value for key.
type LookupFunc func(key string) (string, bool)

// Load reads every option through lookup. Missing keys and rejected values
// keep their value from prev; rejections are returned joined.
func Load(lookup LookupFunc, prev Options) (Options, error) {
	opts := prev
	var errs []error

	if v, ok := lookup(KeyCubeSize); ok {
		n, err := parseCubeSize(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeyCubeSize, err))
		} else {
			opts.CubeSize = n
		}
	}
	if v, ok := lookup(KeyResolution); ok {
		r, err := parseAllowedResolution(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeyResolution, err))
		} else {
			opts.Resolution = r
		}
	}
	if v, ok := lookup(KeyStrategy); ok {
		s, err := grid.ParseStrategy(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeyStrategy, err))
		} else {
			opts.Strategy = s
		}
	}

	return opts, errors.Join(errs...)
}

func parseCubeSize(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%q: %w", v, ErrUnknownCubeSize)
	}
	for _, allowed := range CubeSizes {
		if n == allowed {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%d: %w", n, ErrUnknownCubeSize)
}

func parseAllowedResolution(v string) (Resolution, error) {
	r, err := ParseResolution(strings.TrimSpace(v))
	if err != nil {
		return Resolution{}, err
	}
	for _, allowed := range Resolutions {
		if r == allowed {
			return r, nil
		}
	}
	return Resolution{}, fmt.Errorf("%v: %w", r, ErrUnknownResolution)
}

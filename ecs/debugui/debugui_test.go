package debugui

import (
	"reflect"
	"testing"

	"github.com/plus3/tetrispi/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mode int

func (m mode) String() string { return "mode" }

type inner struct {
	Depth int
}

type sample struct {
	Count   int
	Ratio   float64
	Name    string `inspect:"readonly"`
	Mode    mode
	Inner   inner
	Ptr     *inner
	Hidden  int `inspect:"-"`
	private int
}

func TestFieldsOf(t *testing.T) {
	fields := fieldsOf(reflect.TypeFor[sample]())

	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Count", "Ratio", "Name", "Mode", "Inner", "Ptr"}, names)

	assert.True(t, fields[0].Editable())
	assert.True(t, fields[2].ReadOnly)
	assert.False(t, fields[2].Editable())
	assert.True(t, fields[3].Stringer)
	assert.False(t, fields[3].Editable())
	assert.True(t, fields[5].Pointer)
	assert.Equal(t, reflect.TypeFor[inner](), fields[5].Type)

	assert.Equal(t, fields, fieldsOf(reflect.TypeFor[sample]()))
	assert.Empty(t, fieldsOf(reflect.TypeFor[int]()))
}

func TestDescribe(t *testing.T) {
	s := sample{Mode: 2}
	val := reflect.ValueOf(&s).Elem()
	assert.Equal(t, "mode", describe(val.Field(3)))
	assert.Equal(t, "0", describe(val.Field(0)))
}

func TestPerformanceAverage(t *testing.T) {
	ps := NewPerformanceStatsComponent(4)
	ms, fps := ps.average()
	assert.Zero(t, ms)
	assert.Zero(t, fps)

	for range 4 {
		ps.record(0.010)
	}
	ms, fps = ps.average()
	assert.InDelta(t, 10.0, ms, 0.001)
	assert.InDelta(t, 100.0, fps, 0.01)

	ps.record(0.030)
	ms, _ = ps.average()
	assert.InDelta(t, 15.0, ms, 0.001)
	assert.Equal(t, 1, ps.frameIndex)
}

func TestSpawnDebugUI(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)

	var s sample
	SpawnDebugUI(storage, Target{Storage: storage},
		NewInspectorComponent("Sample", func() any { return &s }),
	)

	assert.Equal(t, 2, ecs.NewQuery[ImguiItem](storage).Len())
	require.True(t, ecs.NewSingleton[ImguiInputState](storage).Exists())
}

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terramap/labelconv/pkg/label"
)

func TestVerifyDefinitions_AllMatch(t *testing.T) {
	t.Parallel()

	defs := []label.Definition{
		{Name: "depth", Expression: "[Feet]", Expected: "Feet"},
		{Name: "operator", Expression: "[Wells.Operator]", Expected: "Operator"},
	}

	mismatches, checked := verifyDefinitions(defs)

	assert.Empty(t, mismatches)
	assert.Equal(t, 2, checked)
}

func TestVerifyDefinitions_DetectsDrift(t *testing.T) {
	t.Parallel()

	defs := []label.Definition{
		{Name: "depth", Expression: "[Feet]", Expected: "Meters"},
	}

	mismatches, checked := verifyDefinitions(defs)

	require.Len(t, mismatches, 1)
	assert.Equal(t, 1, checked)
	assert.Equal(t, "depth", mismatches[0].Name)
	assert.Equal(t, "Meters", mismatches[0].Expected)
	assert.Equal(t, "Feet", mismatches[0].Actual)
}

func TestVerifyDefinitions_ConversionErrorIsMismatch(t *testing.T) {
	t.Parallel()

	defs := []label.Definition{
		{Name: "bad", Engine: "Arcade", Expression: "$feature.Name", Expected: "Name"},
	}

	mismatches, checked := verifyDefinitions(defs)

	require.Len(t, mismatches, 1)
	assert.Equal(t, 1, checked)
	require.ErrorIs(t, mismatches[0].Err, label.ErrUnsupportedEngine)
}

func TestVerifyDefinitions_SkipsEntriesWithoutExpectation(t *testing.T) {
	t.Parallel()

	defs := []label.Definition{
		{Name: "unchecked", Expression: "[Name]"},
		{Name: "checked", Expression: "[Feet]", Expected: "Feet"},
	}

	mismatches, checked := verifyDefinitions(defs)

	assert.Empty(t, mismatches)
	assert.Equal(t, 1, checked)
}

func TestVerifyDefinitions_FullProgramExpectation(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [NAME] )
  x = [NAME]
  If x = "Salt Dome" Then
      x = ""
  End If
  FindLabel = x
End Function`

	expected := `with_variable('x', "NAME", with_variable('x', CASE
  WHEN @x = 'Salt Dome' THEN ''
  ELSE @x
END, @x))`

	mismatches, checked := verifyDefinitions([]label.Definition{
		{Name: "salt-dome", Expression: program, Expected: expected},
	})

	assert.Empty(t, mismatches)
	assert.Equal(t, 1, checked)
}

package vbscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_BareFieldName(t *testing.T) {
	t.Parallel()

	got, err := Translate("[Name]")

	require.NoError(t, err)
	assert.Equal(t, "Name", got.Expression)
	assert.False(t, got.IsExpression)
}

func TestTranslate_BareFieldWithTableQualifier(t *testing.T) {
	t.Parallel()

	got, err := Translate("[Wells.Operator]")

	require.NoError(t, err)
	assert.Equal(t, "Operator", got.Expression)
	assert.False(t, got.IsExpression)
}

func TestTranslate_SimpleFragment(t *testing.T) {
	t.Parallel()

	got, err := Translate(`[Feet]+ " ft (" + [Meters] + " m)"`)

	require.NoError(t, err)
	assert.Equal(t, `"Feet" || ' ft (' || "Meters" || ' m)'`, got.Expression)
	assert.True(t, got.IsExpression)
}

func TestTranslate_Idempotent(t *testing.T) {
	t.Parallel()

	first, err1 := Translate(`[Name]  & "   " & [Isochron]`)
	second, err2 := Translate(`[Name]  & "   " & [Isochron]`)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestTranslate_SimpleIfProgram(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [NAME] )
  x = [NAME]
  If x = "Salt Dome" Then
      x = ""
  End If
  FindLabel = x
End Function`

	got, err := Translate(program)

	require.NoError(t, err)
	assert.True(t, got.IsExpression)

	want := `with_variable('x', "NAME", with_variable('x', CASE
  WHEN @x = 'Salt Dome' THEN ''
  ELSE @x
END, @x))`
	assert.Equal(t, want, got.Expression)
}

func TestTranslate_SelectCaseNoCaseElse(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [WellData_CarbThk], [WellData_Penetration] )
  t = [WellData_CarbThk]
  Select Case [WellData_Penetration]
    Case 1599
      t = ">1"
  End Select
  FindLabel = t
End Function`

	got, err := Translate(program)

	require.NoError(t, err)

	want := `with_variable('t', "WellData_CarbThk", with_variable('t', CASE
  WHEN "WellData_Penetration" = 1599 THEN '>1'
  ELSE @t
END, @t))`
	assert.Equal(t, want, got.Expression)
}

func TestTranslate_SelectCaseMultiValueRendersIn(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T], [P] )
  t = [T]
  Select Case [P]
    Case 1222,3144
      t = t & "+"
  End Select
  FindLabel = t
End Function`

	got, err := Translate(program)

	require.NoError(t, err)

	want := `with_variable('t', "T", with_variable('t', CASE
  WHEN "P" IN (1222, 3144) THEN (@t) || '+'
  ELSE @t
END, @t))`
	assert.Equal(t, want, got.Expression)
}

func TestTranslate_SelfReferenceComposesWithinBranch(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T], [Q] )
  t = [T]
  If [Q] = 1 Then
    t = t & "a"
    t = t & "b"
  End If
  FindLabel = t
End Function`

	got, err := Translate(program)

	require.NoError(t, err)

	want := `with_variable('t', "T", with_variable('t', CASE
  WHEN "Q" = 1 THEN ((@t) || 'a') || 'b'
  ELSE @t
END, @t))`
	assert.Equal(t, want, got.Expression)
}

func TestTranslate_ChainedSelectBlocksComposeInOrder(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T], [P], [G] )
  t = [T]
  Select Case [P]
    Case 1
      t = t & "x"
  End Select
  Select Case [G]
    Case 2
      t = t & "y"
  End Select
  FindLabel = t
End Function`

	got, err := Translate(program)

	require.NoError(t, err)

	firstBlock := `CASE
  WHEN "P" = 1 THEN (@t) || 'x'
  ELSE @t
END`
	secondBlock := `CASE
  WHEN "G" = 2 THEN (@t) || 'y'
  ELSE @t
END`
	want := `with_variable('t', "T", with_variable('t', ` + firstBlock +
		`, with_variable('t', ` + secondBlock + `, @t)))`
	assert.Equal(t, want, got.Expression)
}

func TestTranslate_IfElseIfChainWithNestedIf(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [D1], [D2] , [D3], [P] )
  d1 = [D1]
  d2 = [D2]
  d3 = [D3]
  pen = [P]
  label = d1
  If pen = 9001 Then
    label = "(lp)"
  ElseIf d2 <> "-" Then
      label = d1 & "/" & d2
      if d3 <> "-" Then
        label = label & "/" & d3
      End If
  End If
  FindLabel = label
End Function`

	got, err := Translate(program)

	require.NoError(t, err)

	nested := `CASE WHEN @d3 != '-' THEN (@d1 || '/' || @d2) || '/' || @d3 ELSE @d1 || '/' || @d2 END`
	block := `CASE
  WHEN @pen = 9001 THEN '(lp)'
  WHEN @d2 != '-' THEN ` + nested + `
  ELSE @label
END`
	want := `with_variable('d1', "D1", with_variable('d2', "D2", with_variable('d3', "D3", ` +
		`with_variable('pen', "P", with_variable('label', @d1, with_variable('label', ` + block + `, @label))))))`
	assert.Equal(t, want, got.Expression)
}

func TestTranslate_NestedIfInsideCaseBody(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T], [P] )
  t = [T]
  Select Case [P]
    Case 7666
      If t <> 0 Then
        t = "<" & t
      End If
  End Select
  FindLabel = t
End Function`

	got, err := Translate(program)

	require.NoError(t, err)

	want := `with_variable('t', "T", with_variable('t', CASE
  WHEN "P" = 7666 THEN CASE WHEN @t != 0 THEN '<' || (@t) ELSE @t END
  ELSE @t
END, @t))`
	assert.Equal(t, want, got.Expression)
}

func TestTranslate_ExplicitElseBranch(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [Top_SH_SS] )
  t = [Top_SH_SS]
  if t = "-1" then
    t = "not penetrated"
  elseif t = "-2" then
    t = "lapout"
  else
    t = ""
  end if
  FindLabel = t
End Function`

	got, err := Translate(program)

	require.NoError(t, err)

	want := `with_variable('t', "Top_SH_SS", with_variable('t', CASE
  WHEN @t = '-1' THEN 'not penetrated'
  WHEN @t = '-2' THEN 'lapout'
  ELSE ''
END, @t))`
	assert.Equal(t, want, got.Expression)
}

func TestTranslate_CaseElseBranch(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T], [P] )
  t = [T]
  Select Case [P]
    Case 1
      t = "one"
    Case Else
      t = "other"
  End Select
  FindLabel = t
End Function`

	got, err := Translate(program)

	require.NoError(t, err)

	want := `with_variable('t', "T", with_variable('t', CASE
  WHEN "P" = 1 THEN 'one'
  ELSE 'other'
END, @t))`
	assert.Equal(t, want, got.Expression)
}

func TestTranslate_StringCaseValues(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [Iso_PW],[Iso_PW_Q]  )
  t = [Iso_PW]
  if [Iso_PW_Q] = "gt" then
    t = t & "+"
  end if
  FindLabel = t
End Function`

	got, err := Translate(program)

	require.NoError(t, err)

	want := `with_variable('t', "Iso_PW", with_variable('t', CASE
  WHEN "Iso_PW_Q" = 'gt' THEN (@t) || '+'
  ELSE @t
END, @t))`
	assert.Equal(t, want, got.Expression)
}

func TestTranslate_EntityEscapedOperators(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T], [P] )
  t = [T]
  If t &lt;&gt; 0 Then
    t = "&lt;" &amp; t
  End If
  FindLabel = t
End Function`

	got, err := Translate(program)

	require.NoError(t, err)

	want := `with_variable('t', "T", with_variable('t', CASE
  WHEN @t != 0 THEN '<' || (@t)
  ELSE @t
END, @t))`
	assert.Equal(t, want, got.Expression)
}

func TestTranslate_NoInitialAssignmentFails(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T] )
  If [T] = 1 Then
  End If
End Function`

	_, err := Translate(program)

	require.ErrorIs(t, err, ErrStructural)
}

func TestTranslate_UnterminatedIfFails(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T] )
  t = [T]
  If t = 1 Then
    t = "x"
  FindLabel = t
End Function`

	_, err := Translate(program)

	require.ErrorIs(t, err, ErrStructural)
}

func TestTranslate_UnterminatedSelectFails(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T], [P] )
  t = [T]
  Select Case [P]
    Case 1
      t = "x"
  FindLabel = t
End Function`

	_, err := Translate(program)

	require.ErrorIs(t, err, ErrStructural)
}

func TestTranslate_AssignmentToNonTargetInBlockFails(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T], [P] )
  t = [T]
  If [P] = 1 Then
    other = "x"
  End If
  FindLabel = t
End Function`

	_, err := Translate(program)

	require.ErrorIs(t, err, ErrStructural)
}

func TestTranslate_AssignmentToNonTargetBetweenBlocksFails(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T], [P] )
  t = [T]
  If [P] = 1 Then
    t = "x"
  End If
  other = t
  FindLabel = t
End Function`

	_, err := Translate(program)

	require.ErrorIs(t, err, ErrStructural)
}

func TestTranslate_LoopConstructFails(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T] )
  t = [T]
  For i = 1 To 10
    t = t & "x"
  Next
  FindLabel = t
End Function`

	_, err := Translate(program)

	require.ErrorIs(t, err, ErrUnsupported)
}

func TestTranslate_ErrorMentionsOffendingLine(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T], [P] )
  t = [T]
  If [P] = 1 Then
    other = "x"
  End If
  FindLabel = t
End Function`

	_, err := Translate(program)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")
	assert.Contains(t, err.Error(), "non-target")
}

func TestTranslate_CommentsAndBlanksIgnored(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T] )
  ' pick the thickness value
  t = [T]

  FindLabel = t
End Function`

	got, err := Translate(program)

	require.NoError(t, err)
	assert.Equal(t, `with_variable('t', "T", @t)`, got.Expression)
}

func TestTranslate_NoOpBranchFallsThrough(t *testing.T) {
	t.Parallel()

	program := `Function FindLabel ( [T], [P] )
  t = [T]
  Select Case [P]
    Case 1
    Case 2
      t = "two"
  End Select
  FindLabel = t
End Function`

	got, err := Translate(program)

	require.NoError(t, err)

	want := `with_variable('t', "T", with_variable('t', CASE
  WHEN "P" = 1 THEN @t
  WHEN "P" = 2 THEN 'two'
  ELSE @t
END, @t))`
	assert.Equal(t, want, got.Expression)
}

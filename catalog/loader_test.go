package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdeploykit/compat-framework/compat"
	"github.com/appdeploykit/compat-framework/param"
)

func Test_Load_TestdataCatalog(t *testing.T) {
	t.Parallel()

	ops, err := Load("testdata/catalog.yaml")
	require.NoError(t, err)
	require.Len(t, ops, 2)

	reg := compat.NewRegistry(ops...)

	op, err := reg.Retrieve("Set-ServiceStartMode")
	require.NoError(t, err)
	assert.Equal(t, "Set-ADTServiceStartMode", op.Replacement.ID)
	assert.Equal(t, "4.0.0", op.Replacement.Version.String())

	tr, err := compat.Translate(op, param.New().
		With("Name", "wuauserv").
		With("StartMode", "Automatic (Delayed Start)"))
	require.NoError(t, err)
	assert.True(t, tr.ContinueOnError)

	v, _ := tr.Bag.String("Service")
	assert.Equal(t, "wuauserv", v)
	v, _ = tr.Bag.String("StartMode")
	assert.Equal(t, "AutomaticDelayedStart", v)

	op, err = reg.Retrieve("Get-LoggedOnUser")
	require.NoError(t, err)
	tr, err = compat.Translate(op, param.New().With("DisableLogging", true))
	require.NoError(t, err)
	assert.Zero(t, tr.Bag.Len())
	assert.Len(t, tr.DeadNotices, 1)
}

func Test_Parse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "not yaml",
			doc:     "{{nope",
			wantErr: "parsing catalog",
		},
		{
			name: "missing name",
			doc: `
operations:
  - replacement: {id: X, version: 4.0.0}
`,
			wantErr: "missing a name",
		},
		{
			name: "missing replacement id",
			doc: `
operations:
  - name: Do-Thing
    replacement: {version: 4.0.0}
`,
			wantErr: "replacement id is required",
		},
		{
			name: "bad version",
			doc: `
operations:
  - name: Do-Thing
    replacement: {id: X, version: not-a-version}
`,
			wantErr: "not-a-version",
		},
		{
			name: "unknown step",
			doc: `
operations:
  - name: Do-Thing
    replacement: {id: X, version: 4.0.0}
    steps:
      - frobnicate: {param: Y}
`,
			wantErr: "does not declare a known rule",
		},
		{
			name: "bad pattern",
			doc: `
operations:
  - name: Do-Thing
    replacement: {id: X, version: 4.0.0}
    steps:
      - requirePattern: {param: Key, pattern: "(["}
`,
			wantErr: "pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.doc))
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func Test_Parse_SplitDefaultSeparator(t *testing.T) {
	t.Parallel()

	ops, err := Parse([]byte(`
operations:
  - name: Do-Thing
    replacement: {id: X, version: 4.0.0}
    accepts: [Items]
    steps:
      - split: {from: List, to: Items}
`))
	require.NoError(t, err)
	require.Len(t, ops, 1)

	tr, err := compat.Translate(ops[0], param.New().With("List", "a,b"))
	require.NoError(t, err)
	items, ok := tr.Bag.Strings("Items")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, items)
}

package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeDocument(t *testing.T) {
	data := []byte(`{
		"file": "fn_test.sqf",
		"source": "x = 1 + 2",
		"statements": [
			{
				"type": "assign_global",
				"name": "x",
				"span": [0, 9],
				"value": {
					"type": "binary",
					"name": "+",
					"span": [4, 9],
					"left": {"type": "number", "number": 1, "span": [4, 5]},
					"right": {"type": "number", "number": 2, "span": [8, 9]}
				}
			}
		]
	}`)

	doc, err := DecodeDocument(data)
	require.NoError(t, err)
	require.Equal(t, "fn_test.sqf", doc.File)
	require.Equal(t, "x = 1 + 2", doc.Source)
	require.Equal(t, "x = 1 + 2", doc.Statements.Source)
	require.Len(t, doc.Statements.Content, 1)

	assign, ok := doc.Statements.Content[0].(*AssignGlobal)
	require.True(t, ok)
	require.Equal(t, "x", assign.Name)
	require.Equal(t, Span{Start: 0, End: 9}, assign.Range)

	binary, ok := assign.Value.(*BinaryCommand)
	require.True(t, ok)
	require.Equal(t, "+", binary.Name)
	require.Equal(t, &Number{Value: 1, Range: Span{Start: 4, End: 5}}, binary.Left)
	require.Equal(t, &Number{Value: 2, Range: Span{Start: 8, End: 9}}, binary.Right)
}

func TestDecodeDocumentAllNodeTypes(t *testing.T) {
	data := []byte(`{
		"file": "init.sqf",
		"source": "run = { private _n = count [true, player]; hint str _n }",
		"statements": [
			{
				"type": "assign_global",
				"name": "run",
				"span": [0, 56],
				"value": {
					"type": "code",
					"span": [6, 56],
					"source": " private _n = count [true, player]; hint str _n ",
					"body": [
						{
							"type": "assign_local",
							"name": "_n",
							"span": [8, 41],
							"value": {
								"type": "unary",
								"name": "count",
								"span": [22, 41],
								"operand": {
									"type": "array",
									"span": [28, 41],
									"elements": [
										{"type": "boolean", "boolean": true, "span": [29, 33]},
										{"type": "nular", "name": "player", "span": [35, 41]}
									]
								}
							}
						},
						{
							"type": "expression",
							"value": {
								"type": "unary",
								"name": "hint",
								"span": [43, 54],
								"operand": {
									"type": "unary",
									"name": "str",
									"span": [48, 54],
									"operand": {"type": "variable", "name": "_n", "span": [52, 54]}
								}
							}
						}
					]
				}
			}
		]
	}`)

	doc, err := DecodeDocument(data)
	require.NoError(t, err)
	require.Len(t, doc.Statements.Content, 1)

	assign := doc.Statements.Content[0].(*AssignGlobal)
	code, ok := assign.Value.(*Code)
	require.True(t, ok)
	require.Equal(t, " private _n = count [true, player]; hint str _n ", code.Statements.Source)
	require.Len(t, code.Statements.Content, 2)

	local, ok := code.Statements.Content[0].(*AssignLocal)
	require.True(t, ok)
	require.Equal(t, "_n", local.Name)

	count, ok := local.Value.(*UnaryCommand)
	require.True(t, ok)
	arr, ok := count.Operand.(*Array)
	require.True(t, ok)
	require.Len(t, arr.Elements, 2)
	require.IsType(t, &Boolean{}, arr.Elements[0])
	require.IsType(t, &NularCommand{}, arr.Elements[1])

	stmt, ok := code.Statements.Content[1].(*ExprStmt)
	require.True(t, ok)
	require.IsType(t, &UnaryCommand{}, stmt.Value)
}

func TestDecodeDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "invalid json",
			data: `{`,
			want: "invalid ast document",
		},
		{
			name: "unknown statement type",
			data: `{"statements": [{"type": "loop"}]}`,
			want: `unknown statement type "loop"`,
		},
		{
			name: "unknown expression type",
			data: `{"statements": [{"type": "expression", "value": {"type": "lambda"}}]}`,
			want: `unknown expression type "lambda"`,
		},
		{
			name: "assignment without value",
			data: `{"statements": [{"type": "assign_global", "name": "x"}]}`,
			want: `assignment of "x" is missing a value`,
		},
		{
			name: "expression without value",
			data: `{"statements": [{"type": "expression"}]}`,
			want: "expression statement is missing a value",
		},
		{
			name: "unary without operand",
			data: `{"statements": [{"type": "expression", "value": {"type": "unary", "name": "hint"}}]}`,
			want: `unary command "hint" is missing an operand`,
		},
		{
			name: "binary without operands",
			data: `{"statements": [{"type": "expression", "value": {"type": "binary", "name": "+", "left": {"type": "number", "number": 1}}}]}`,
			want: `binary command "+" is missing an operand`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(tt.data))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

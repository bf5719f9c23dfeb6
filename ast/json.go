package ast

import (
	"encoding/json"
	"fmt"
)

// Document is the hand-off format produced by the external SQF parser: the
// processed source text, the file it came from, and the parsed statement
// tree encoded as JSON.
type Document struct {
	File       string
	Source     string
	Statements *Statements
}

type jsonDocument struct {
	File       string     `json:"file"`
	Source     string     `json:"source"`
	Statements []jsonNode `json:"statements"`
}

// jsonNode is the wire shape shared by statement and expression nodes.
// Only the fields relevant to the node's type are populated.
type jsonNode struct {
	Type     string     `json:"type"`
	Name     string     `json:"name,omitempty"`
	Span     [2]int     `json:"span,omitempty"`
	Value    *jsonNode  `json:"value,omitempty"`
	Left     *jsonNode  `json:"left,omitempty"`
	Right    *jsonNode  `json:"right,omitempty"`
	Operand  *jsonNode  `json:"operand,omitempty"`
	Elements []jsonNode `json:"elements,omitempty"`
	Source   string     `json:"source,omitempty"`
	Body     []jsonNode `json:"body,omitempty"`
	String   string     `json:"string,omitempty"`
	Number   float64    `json:"number,omitempty"`
	Boolean  bool       `json:"boolean,omitempty"`
}

// DecodeDocument parses a JSON AST document.
func DecodeDocument(data []byte) (*Document, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid ast document: %w", err)
	}
	content, err := decodeStatements(doc.Statements)
	if err != nil {
		return nil, err
	}
	return &Document{
		File:       doc.File,
		Source:     doc.Source,
		Statements: &Statements{Content: content, Source: doc.Source},
	}, nil
}

func decodeStatements(nodes []jsonNode) ([]Stmt, error) {
	stmts := make([]Stmt, 0, len(nodes))
	for i := range nodes {
		stmt, err := decodeStatement(&nodes[i])
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeStatement(node *jsonNode) (Stmt, error) {
	switch node.Type {
	case "assign_global", "assign_local":
		if node.Value == nil {
			return nil, fmt.Errorf("assignment of %q is missing a value", node.Name)
		}
		value, err := decodeExpression(node.Value)
		if err != nil {
			return nil, err
		}
		span := Span{Start: node.Span[0], End: node.Span[1]}
		if node.Type == "assign_local" {
			return &AssignLocal{Name: node.Name, Value: value, Range: span}, nil
		}
		return &AssignGlobal{Name: node.Name, Value: value, Range: span}, nil
	case "expression":
		if node.Value == nil {
			return nil, fmt.Errorf("expression statement is missing a value")
		}
		value, err := decodeExpression(node.Value)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Value: value}, nil
	default:
		return nil, fmt.Errorf("unknown statement type %q", node.Type)
	}
}

func decodeExpression(node *jsonNode) (Expr, error) {
	span := Span{Start: node.Span[0], End: node.Span[1]}
	switch node.Type {
	case "array":
		elements := make([]Expr, 0, len(node.Elements))
		for i := range node.Elements {
			element, err := decodeExpression(&node.Elements[i])
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
		}
		return &Array{Elements: elements, Range: span}, nil
	case "nular":
		return &NularCommand{Name: node.Name, Range: span}, nil
	case "unary":
		if node.Operand == nil {
			return nil, fmt.Errorf("unary command %q is missing an operand", node.Name)
		}
		operand, err := decodeExpression(node.Operand)
		if err != nil {
			return nil, err
		}
		return &UnaryCommand{Name: node.Name, Operand: operand, Range: span}, nil
	case "binary":
		if node.Left == nil || node.Right == nil {
			return nil, fmt.Errorf("binary command %q is missing an operand", node.Name)
		}
		left, err := decodeExpression(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryCommand{Name: node.Name, Left: left, Right: right, Range: span}, nil
	case "variable":
		return &Variable{Name: node.Name, Range: span}, nil
	case "code":
		content, err := decodeStatements(node.Body)
		if err != nil {
			return nil, err
		}
		return &Code{
			Statements: &Statements{Content: content, Source: node.Source},
			Range:      span,
		}, nil
	case "string":
		return &String{Value: node.String, Range: span}, nil
	case "number":
		return &Number{Value: Scalar(node.Number), Range: span}, nil
	case "boolean":
		return &Boolean{Value: node.Boolean, Range: span}, nil
	default:
		return nil, fmt.Errorf("unknown expression type %q", node.Type)
	}
}

package astio

import (
	"gopkg.in/yaml.v3"

	"github.com/funvibe/tigersem/internal/ast"
)

func (d *decoder) lvalue(n *yaml.Node) (ast.Var, error) {
	if n.Kind == yaml.ScalarNode {
		name, err := d.name(n, "variable")
		if err != nil {
			return nil, err
		}
		return &ast.SimpleVar{Token: tok(n, name.Name()), Name: name}, nil
	}
	key, val, err := d.single(n, "variable reference")
	if err != nil {
		return nil, err
	}
	switch key.Value {
	case "field":
		m, err := d.fields(val, "field", "of", "name")
		if err != nil {
			return nil, err
		}
		ofNode, err := d.required(m, val, "field", "of")
		if err != nil {
			return nil, err
		}
		nameNode, err := d.required(m, val, "field", "name")
		if err != nil {
			return nil, err
		}
		base, err := d.lvalue(ofNode)
		if err != nil {
			return nil, err
		}
		field, err := d.name(nameNode, "field name")
		if err != nil {
			return nil, err
		}
		return &ast.FieldVar{Token: tok(nameNode, field.Name()), Var: base, Field: field}, nil
	case "index":
		m, err := d.fields(val, "index", "of", "at")
		if err != nil {
			return nil, err
		}
		ofNode, err := d.required(m, val, "index", "of")
		if err != nil {
			return nil, err
		}
		atNode, err := d.required(m, val, "index", "at")
		if err != nil {
			return nil, err
		}
		base, err := d.lvalue(ofNode)
		if err != nil {
			return nil, err
		}
		index, err := d.exp(atNode)
		if err != nil {
			return nil, err
		}
		return &ast.SubscriptVar{Token: tok(key, "["), Var: base, Index: index}, nil
	default:
		return nil, d.errorf(key, "unknown variable form %q", key.Value)
	}
}

func (d *decoder) dec(n *yaml.Node) (ast.Dec, error) {
	key, val, err := d.single(n, "declaration")
	if err != nil {
		return nil, err
	}
	switch key.Value {
	case "var":
		return d.varDec(key, val)
	case "type":
		return d.typeDec(key, val)
	case "function":
		return d.funDec(key, val)
	default:
		return nil, d.errorf(key, "unknown declaration form %q", key.Value)
	}
}

func (d *decoder) varDec(key, val *yaml.Node) (ast.Dec, error) {
	m, err := d.fields(val, "var declaration", "name", "type", "init")
	if err != nil {
		return nil, err
	}
	nameNode, err := d.required(m, val, "var declaration", "name")
	if err != nil {
		return nil, err
	}
	initNode, err := d.required(m, val, "var declaration", "init")
	if err != nil {
		return nil, err
	}
	name, err := d.name(nameNode, "variable name")
	if err != nil {
		return nil, err
	}
	out := &ast.VarDec{Token: tok(nameNode, name.Name()), Name: name}
	if typeNode, ok := m["type"]; ok && !isNull(typeNode) {
		if out.Type, err = d.nameTy(typeNode); err != nil {
			return nil, err
		}
	}
	if out.Init, err = d.exp(initNode); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) typeDec(key, val *yaml.Node) (ast.Dec, error) {
	m, err := d.fields(val, "type declaration", "name", "ty")
	if err != nil {
		return nil, err
	}
	nameNode, err := d.required(m, val, "type declaration", "name")
	if err != nil {
		return nil, err
	}
	tyNode, err := d.required(m, val, "type declaration", "ty")
	if err != nil {
		return nil, err
	}
	name, err := d.name(nameNode, "type name")
	if err != nil {
		return nil, err
	}
	ty, err := d.ty(tyNode)
	if err != nil {
		return nil, err
	}
	return &ast.TypeDec{Token: tok(nameNode, name.Name()), Name: name, Ty: ty}, nil
}

func (d *decoder) funDec(key, val *yaml.Node) (ast.Dec, error) {
	m, err := d.fields(val, "function declaration", "name", "params", "result", "body")
	if err != nil {
		return nil, err
	}
	nameNode, err := d.required(m, val, "function declaration", "name")
	if err != nil {
		return nil, err
	}
	name, err := d.name(nameNode, "function name")
	if err != nil {
		return nil, err
	}
	out := &ast.FunctionDec{Token: tok(nameNode, name.Name()), Name: name}
	if params, ok := m["params"]; ok {
		if out.Params, err = d.fieldList(params, "params"); err != nil {
			return nil, err
		}
	}
	if resultNode, ok := m["result"]; ok && !isNull(resultNode) {
		if out.Result, err = d.nameTy(resultNode); err != nil {
			return nil, err
		}
	}
	if out.Body, err = d.optExp(m["body"]); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) nameTy(n *yaml.Node) (*ast.NameTy, error) {
	name, err := d.name(n, "type name")
	if err != nil {
		return nil, err
	}
	return &ast.NameTy{Token: tok(n, name.Name()), Name: name}, nil
}

func (d *decoder) ty(n *yaml.Node) (ast.Ty, error) {
	if n.Kind == yaml.ScalarNode {
		return d.nameTy(n)
	}
	key, val, err := d.single(n, "type")
	if err != nil {
		return nil, err
	}
	switch key.Value {
	case "array":
		elem, err := d.name(val, "array element type")
		if err != nil {
			return nil, err
		}
		return &ast.ArrayTy{Token: tok(key, "array"), Elem: elem}, nil
	case "record":
		fields, err := d.fieldList(val, "record")
		if err != nil {
			return nil, err
		}
		return &ast.RecordTy{Token: tok(key, "{"), Fields: fields}, nil
	default:
		return nil, d.errorf(key, "unknown type form %q", key.Value)
	}
}

func (d *decoder) fieldList(n *yaml.Node, form string) ([]*ast.Field, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "%s expects a list of {name, type}", form)
	}
	out := make([]*ast.Field, 0, len(n.Content))
	for _, item := range n.Content {
		m, err := d.fields(item, form, "name", "type")
		if err != nil {
			return nil, err
		}
		nameNode, err := d.required(m, item, form, "name")
		if err != nil {
			return nil, err
		}
		typeNode, err := d.required(m, item, form, "type")
		if err != nil {
			return nil, err
		}
		name, err := d.name(nameNode, "field name")
		if err != nil {
			return nil, err
		}
		typ, err := d.name(typeNode, "field type")
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Field{Token: tok(nameNode, name.Name()), Name: name, Type: typ})
	}
	return out, nil
}

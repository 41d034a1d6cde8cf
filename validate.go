package jsontree

import "fmt"

// Validate checks that candidate's shape matches schema, per §4.6.
// A JSONNull schema value matches anything. An object schema matches
// any object if it has no keys of its own; otherwise every key of
// schema must be present in candidate and the corresponding values
// must recursively validate (candidate may carry extra keys). An
// array schema matches any array if empty; otherwise its first
// element is the template every element of candidate must validate
// against. Any other schema type matches a candidate of the same
// type, regardless of value.
func Validate(schema, candidate *Value) error {
	if schema == nil || candidate == nil {
		return fmt.Errorf("%w: nil value", ErrContract)
	}
	if schema.Type() == TypeNull {
		return nil
	}
	if schema.Type() != candidate.Type() {
		return fmt.Errorf("%w: expected %s, got %s", ErrType, schema.Type(), candidate.Type())
	}
	switch schema.Type() {
	case TypeObject:
		return validateObject(schema, candidate)
	case TypeArray:
		return validateArray(schema, candidate)
	default:
		return nil
	}
}

func validateObject(schema, candidate *Value) error {
	schemaObj, err := schema.AsObject()
	if err != nil {
		return err
	}
	candidateObj, err := candidate.AsObject()
	if err != nil {
		return err
	}
	if schemaObj.Len() == 0 {
		return nil
	}
	var firstErr error
	schemaObj.Each(func(name string, schemaVal *Value) bool {
		candidateVal, ok := candidateObj.Get(name)
		if !ok {
			firstErr = fmt.Errorf("%w: missing key %q", ErrType, name)
			return false
		}
		if err := Validate(schemaVal, candidateVal); err != nil {
			firstErr = fmt.Errorf("key %q: %w", name, err)
			return false
		}
		return true
	})
	return firstErr
}

func validateArray(schema, candidate *Value) error {
	schemaArr, err := schema.AsArray()
	if err != nil {
		return err
	}
	candidateArr, err := candidate.AsArray()
	if err != nil {
		return err
	}
	if schemaArr.Len() == 0 {
		return nil
	}
	template, _ := schemaArr.Get(0)
	var firstErr error
	candidateArr.Each(func(i int, v *Value) bool {
		if err := Validate(template, v); err != nil {
			firstErr = fmt.Errorf("index %d: %w", i, err)
			return false
		}
		return true
	})
	return firstErr
}

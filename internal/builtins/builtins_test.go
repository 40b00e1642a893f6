package builtins

import (
	"testing"

	"structura/internal/types"
)

func TestLookup(t *testing.T) {
	sig, ok := Lookup("isURL")
	if !ok {
		t.Fatal("isURL missing")
	}
	if sig.Arity() != 1 || !types.IsPrimitive(sig.Return, types.BooleanName) {
		t.Errorf("isURL signature = %+v", sig)
	}
	if _, ok := Lookup("add"); ok {
		t.Error("add is not a builtin")
	}
}

func TestVariadicParamAt(t *testing.T) {
	sig, _ := Lookup("print")
	if !sig.Variadic {
		t.Fatal("print must be variadic")
	}
	for i := range 5 {
		if !types.IsAny(sig.ParamAt(i)) {
			t.Errorf("print param %d = %v", i, sig.ParamAt(i))
		}
	}
	minSig, _ := Lookup("min")
	if minSig.ParamAt(2) != nil {
		t.Error("min has two params")
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	sig, _ := Lookup("abs")
	sig.Params[0] = types.String
	again, _ := Lookup("abs")
	if !types.IsPrimitive(again.Params[0], types.NumberName) {
		t.Fatal("registry mutated through Lookup result")
	}
}

func TestNamesOrder(t *testing.T) {
	names := Names()
	if len(names) != 12 || names[0] != "abs" || names[len(names)-1] != "slugify" {
		t.Errorf("names = %v", names)
	}
	for _, n := range names {
		if !IsReserved(n) {
			t.Errorf("%s not reserved", n)
		}
	}
}

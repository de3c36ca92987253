package txscript

// This test file is part of the txscript package rather than the
// txscript_test package so it can bridge access to the internals to
// properly test cases which are either not possible or can't reliably be
// tested via the public interface. The functions are only exported while
// the tests are being run.

var TstParseScript = parseScript

func TstHasCanonicalPushes(pop parsedOpcode) bool {
	return canonicalPush(pop)
}

func TstRemoveOpcode(pkscript []byte, opcode byte) ([]byte, error) {
	pops, err := parseScript(pkscript)
	if err != nil {
		return nil, err
	}
	pops = removeOpcode(pops, opcode)
	return unparseScript(pops)
}

func TstRemoveOpcodeByData(pkscript []byte, data []byte) ([]byte, error) {
	pops, err := parseScript(pkscript)
	if err != nil {
		return nil, err
	}
	pops = removeOpcodeByData(pops, data)
	return unparseScript(pops)
}

package txscript

import "fmt"

// ErrorCode identifies a specific kind of script failure. The set is
// closed: every failure the interpreter can produce maps to exactly
// one of these.
type ErrorCode int

const (
	ErrScriptSize ErrorCode = iota
	ErrPushSize
	ErrOpCount
	ErrStackSize
	ErrSigCount
	ErrPubKeyCount
	ErrInvalidStackOperation
	ErrInvalidAltStackOperation
	ErrVerify
	ErrEqualVerify
	ErrNumEqualVerify
	ErrCheckSigVerify
	ErrCheckMultiSigVerify
	ErrBadOpcode
	ErrDisabledOpcode
	ErrOpReturn
	ErrUnbalancedConditional
	ErrNegativeLockTime
	ErrUnsatisfiedLockTime
	ErrDiscourageUpgradableNops
	ErrMinimalData
	ErrMinimalIf
	ErrSigDER
	ErrSigHighS
	ErrSigHashType
	ErrSigNullDummy
	ErrNullFail
	ErrPubKeyType
	ErrWitnessPubKeyType
	ErrEvalFalse
	ErrCleanStack
	ErrWitnessMalleated
	ErrWitnessMalleatedP2SH
	ErrWitnessUnexpected
	ErrWitnessProgramWitnessEmpty
	ErrWitnessProgramMismatch
	ErrWitnessProgramWrongLength
	ErrDiscourageUpgradableWitnessProgram
	ErrUnknownError
)

var errorCodeStrings = map[ErrorCode]string{
	ErrScriptSize:                         "ErrScriptSize",
	ErrPushSize:                           "ErrPushSize",
	ErrOpCount:                            "ErrOpCount",
	ErrStackSize:                          "ErrStackSize",
	ErrSigCount:                           "ErrSigCount",
	ErrPubKeyCount:                        "ErrPubKeyCount",
	ErrInvalidStackOperation:              "ErrInvalidStackOperation",
	ErrInvalidAltStackOperation:           "ErrInvalidAltStackOperation",
	ErrVerify:                             "ErrVerify",
	ErrEqualVerify:                        "ErrEqualVerify",
	ErrNumEqualVerify:                     "ErrNumEqualVerify",
	ErrCheckSigVerify:                     "ErrCheckSigVerify",
	ErrCheckMultiSigVerify:                "ErrCheckMultiSigVerify",
	ErrBadOpcode:                          "ErrBadOpcode",
	ErrDisabledOpcode:                     "ErrDisabledOpcode",
	ErrOpReturn:                           "ErrOpReturn",
	ErrUnbalancedConditional:              "ErrUnbalancedConditional",
	ErrNegativeLockTime:                   "ErrNegativeLockTime",
	ErrUnsatisfiedLockTime:                "ErrUnsatisfiedLockTime",
	ErrDiscourageUpgradableNops:           "ErrDiscourageUpgradableNops",
	ErrMinimalData:                        "ErrMinimalData",
	ErrMinimalIf:                          "ErrMinimalIf",
	ErrSigDER:                             "ErrSigDER",
	ErrSigHighS:                           "ErrSigHighS",
	ErrSigHashType:                        "ErrSigHashType",
	ErrSigNullDummy:                       "ErrSigNullDummy",
	ErrNullFail:                           "ErrNullFail",
	ErrPubKeyType:                         "ErrPubKeyType",
	ErrWitnessPubKeyType:                  "ErrWitnessPubKeyType",
	ErrEvalFalse:                          "ErrEvalFalse",
	ErrCleanStack:                         "ErrCleanStack",
	ErrWitnessMalleated:                   "ErrWitnessMalleated",
	ErrWitnessMalleatedP2SH:               "ErrWitnessMalleatedP2SH",
	ErrWitnessUnexpected:                  "ErrWitnessUnexpected",
	ErrWitnessProgramWitnessEmpty:         "ErrWitnessProgramWitnessEmpty",
	ErrWitnessProgramMismatch:             "ErrWitnessProgramMismatch",
	ErrWitnessProgramWrongLength:          "ErrWitnessProgramWrongLength",
	ErrDiscourageUpgradableWitnessProgram: "ErrDiscourageUpgradableWitnessProgram",
	ErrUnknownError:                       "ErrUnknownError",
}

func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return "ErrUnknownError"
}

// ScriptError is returned by the interpreter for every script
// failure. It carries the offending opcode and instruction pointer
// when the failure occurred mid-execution; Op is 0 and Offset is -1
// otherwise.
type ScriptError struct {
	Code        ErrorCode
	Description string
	Op          byte
	Offset      int
}

func (e *ScriptError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (op 0x%02x at offset %d)", e.Code, e.Description, e.Op, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// scriptError builds a ScriptError with no opcode/offset context.
// Engine.Step fills in Op and Offset on a copy of any such error
// returned by an executing opcode; errors raised elsewhere (parsing,
// witness-program checks, standardness checks) keep Offset -1.
func scriptError(c ErrorCode, desc string) *ScriptError {
	return &ScriptError{Code: c, Description: desc, Offset: -1}
}

// IsErrorCode reports whether err is a *ScriptError carrying code c.
func IsErrorCode(err error, c ErrorCode) bool {
	se, ok := err.(*ScriptError)
	return ok && se.Code == c
}

// Legacy sentinel errors used by the script parser, script-number
// decoding and the standardness classifiers in standard.go, which
// predate the ScriptError taxonomy and report malformed-script
// conditions rather than execution failures.
var (
	ErrStackShortScript  = scriptError(ErrScriptSize, "script too short")
	ErrStackUnderflow    = scriptError(ErrInvalidStackOperation, "stack underflow")
	ErrStackMinimalData  = scriptError(ErrMinimalData, "numeric value encoded non-minimally")
	ErrStackNumberTooBig = scriptError(ErrUnknownError, "numeric value too large")
	ErrScriptFormat      = scriptError(ErrUnknownError, "invalid script format")
	ErrUnsupportedAddress = scriptError(ErrUnknownError, "unsupported address type")
	ErrBadNumRequired    = scriptError(ErrUnknownError, "required signature count exceeds key count")
)

package pserrors

// Error Message Catalog
//
// This file collects detail-message formats for building an error with
// New(name, format, args...), like the teacher's ErrMsg* catalog. The
// operator bodies in internal/ops and the dispatcher in internal/optable
// pass their own literal format strings; none of them refers to these
// constants.
//
// Format:
//   - messages are lowercase, present tense
//   - they name the operator or value involved wherever useful for a
//     VERBOSE/TRACING dump (spec.md §7)

const (
	// typecheck
	MsgTypeMismatch    = "expected %s, got %s"
	MsgWrongSignature  = "no signature of %s matches operand types"
	MsgNotExecutable   = "%s is not executable"

	// rangecheck
	MsgIndexOutOfBounds = "index %d out of bounds for length %d"
	MsgBadRadix         = "radix %d out of range [2,36]"

	// stackunderflow / stackoverflow
	MsgNeedOperands = "%s requires %d operand(s)"

	// dictfull
	MsgDictAtCapacity = "dict at capacity %d"

	// undefined
	MsgNameUndefined = "%s"

	// invalidrestore
	MsgBadSaveStamp = "save stamp %d is not a live save point"

	// invalidaccess
	MsgAccessDenied = "%s access denied on %s"

	// ioerror / invalidfileaccess / undefinedfilename
	MsgFileOpFailed = "%s: %v"

	// syntaxerror
	MsgScanFailed = "%s"

	// limitcheck
	MsgOverLimit = "%s exceeds limit of %d"

	// unmatchedmark
	MsgNoMark = "no mark found on operand stack"
)

package errors

// Error codes this toolchain reports.
//
// Error code ranges:
// E0100-E0199: Textual IR parse errors
// E0200-E0299: IR builder (name/type resolution) errors
// E0900-E0999: Internal invariant violations (preopt, cfg)

const (
	// E0100: Textual IR syntax error (malformed func/block/instruction)
	ErrorAsmSyntax = "E0100"

	// E0101: Unknown opcode mnemonic
	ErrorUnknownOpcode = "E0101"

	// E0102: Unknown type mnemonic (expected i32, i64 or b1)
	ErrorUnknownType = "E0102"

	// E0103: Unknown condition code mnemonic
	ErrorUnknownCondCode = "E0103"

	// E0200: Reference to an undefined value name
	ErrorUndefinedValue = "E0200"

	// E0201: Reference to an undefined block label
	ErrorUndefinedBlock = "E0201"

	// E0900: Internal invariant violation (programmer error, not a source error)
	ErrorInternalInvariant = "E0900"
)

// GetErrorDescription returns a human-readable description of the error code.
func GetErrorDescription(code string) string {
	switch code {
	case ErrorAsmSyntax:
		return "Textual IR source does not match the grammar"
	case ErrorUnknownOpcode:
		return "Instruction mnemonic is not a known opcode"
	case ErrorUnknownType:
		return "Type mnemonic is not i32, i64 or b1"
	case ErrorUnknownCondCode:
		return "Condition code mnemonic is not recognized"
	case ErrorUndefinedValue:
		return "Value name has no prior definition in this function"
	case ErrorUndefinedBlock:
		return "Block label has no matching block in this function"
	case ErrorInternalInvariant:
		return "Pass encountered IR shape its own invariants rule out"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code.
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0200" && code < "E0300":
		return "Builder"
	case code >= "E0900" && code < "E1000":
		return "Internal"
	default:
		return "Unknown"
	}
}

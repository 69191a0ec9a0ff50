package diag

// Code constants for every diagnostic the compiler can produce.
// Four-digit codes group by phase: VF1xxx lexer, VF2xxx parser,
// VF3xxx desugarer, VF4xxx type system, VF5xxx modules, VF6xxx
// codegen, VF7xxx runtime. Within a phase x900-x999 are warnings.
const (
	// Lexer
	UnexpectedCharacter      = "VF1001"
	UnterminatedString       = "VF1002"
	InvalidEscapeSequence    = "VF1003"
	UnterminatedBlockComment = "VF1004"
	InvalidNumberLiteral     = "VF1005"
	NumberOutOfRange         = "VF1006"
	InvalidFloatLiteral      = "VF1007"
	InvalidIdentifier        = "VF1008"
	InvalidUnicodeCodepoint  = "VF1009"
	UnexpectedEOFInToken     = "VF1010"
	InvalidOperatorSequence  = "VF1011"
	UnknownToken             = "VF1012"
	UnterminatedInterp       = "VF1100"
	EmptyInterp              = "VF1101"
	InterpTooDeep            = "VF1102"
	InvalidInterpExpr        = "VF1103"
	UnexpectedBraceInString  = "VF1104"
	InvalidSourceEncoding    = "VF1300"
	SourceTooLarge           = "VF1400"

	// Parser
	UnexpectedToken        = "VF2001"
	MissingClosingParen    = "VF2010"
	MissingClosingBrace    = "VF2011"
	InvalidPattern         = "VF2100"
	InvalidTypeAnnotation  = "VF2101"
	InvalidDeclaration     = "VF2102"
	InvalidImport          = "VF2103"
	InvalidExport          = "VF2104"
	InvalidRecordSyntax    = "VF2105"
	ExpectedExpression     = "VF2200"
	InvalidMatchSyntax     = "VF2300"
	InvalidTypeDeclaration = "VF2400"
	DuplicateTypeParameter = "VF2401"
	InvalidConstructorDecl = "VF2402"
	UnexpectedEndOfInput   = "VF2500"

	// Desugarer
	InvalidSpreadUsage = "VF3101"

	// Type system
	TypeMismatch             = "VF4001"
	NumericOperandExpected   = "VF4002"
	BooleanOperandExpected   = "VF4003"
	StringOperandExpected    = "VF4004"
	ConditionNotBool         = "VF4005"
	MixedNumericTypes        = "VF4006"
	AssignTargetNotRef       = "VF4007"
	DerefNonRef              = "VF4008"
	ConsNotList              = "VF4009"
	MatchArmTypeMismatch     = "VF4010"
	AnnotationMismatch       = "VF4011"
	RecursiveBindingMismatch = "VF4012"
	NotAFunction             = "VF4013"
	SpreadNonRecord          = "VF4014"
	UpdateNonRecord          = "VF4015"
	UnionNotSupported        = "VF4016"
	UnificationFailure       = "VF4020"
	FunctionArityMismatch    = "VF4021"
	TypeArgArityMismatch     = "VF4022"
	TupleArityMismatch       = "VF4023"
	CannotUnify              = "VF4024"
	VariantMismatch          = "VF4025"
	UnknownVariable          = "VF4100"
	UnknownTypeName          = "VF4101"
	UnknownConstructor       = "VF4102"
	DuplicateDefinition      = "VF4103"
	CtorArityMismatch        = "VF4200"
	NoMatchingOverload       = "VF4201"
	UnappliedOverload        = "VF4202"
	TuplePatternArity        = "VF4203"
	DuplicateRecordField     = "VF4204"
	AmbiguousOverload        = "VF4205"
	InfiniteType             = "VF4300"
	CyclicTypeAlias          = "VF4301"
	NonExhaustiveMatch       = "VF4400"
	DuplicateConstructor     = "VF4401"
	DuplicatePatternBinding  = "VF4402"
	CtorPatternNonVariant    = "VF4403"
	AccessNonRecord          = "VF4500"
	MissingField             = "VF4501"
	UpdateUnknownField       = "VF4502"
	WrongTypeArguments       = "VF4600"
	UnboundTypeParameter     = "VF4601"
	VariantIdentityMismatch  = "VF4602"
	InvalidExternalSignature = "VF4700"
	DuplicateExternal        = "VF4701"
	AssignToImmutable        = "VF4800"
	UnsafeRequired           = "VF4801"
	DerefOutsideUnsafe       = "VF4802"
	RefEscapesUnsafe         = "VF4803"
	InvalidUnsafeBlock       = "VF4804"
	UnreachableMatchCase     = "VF4900"

	// Modules
	ModuleNotFound       = "VF5000"
	UnsupportedURLImport = "VF5001"
	UnsupportedExtension = "VF5002"
	CircularSymlink      = "VF5003"
	SelfImport           = "VF5004"
	InvalidEntryPoint    = "VF5005"
	MalformedConfig      = "VF5100"
	InvalidPathMapping   = "VF5101"
	ImportNotExported    = "VF5102"
	CircularDependency   = "VF5900"
	CasingMismatch       = "VF5901"
)

func init() {
	for _, def := range definitions {
		mustRegister(def)
	}
}

// definitions is the full catalog. The doc generator renders the error
// reference from this table; the core only owns the data.
var definitions = []*Definition{
	// ------------------------------------------------------------------
	// Lexer (VF1xxx)
	// ------------------------------------------------------------------
	{
		Code: UnexpectedCharacter, Title: "Unexpected character",
		MessageTemplate: "Unexpected character '{char}'",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "tokens",
		Explanation: "The lexer encountered a character that cannot start any token.",
		Example:     Example{Bad: "let x = 1 § 2", Good: "let x = 1 + 2", Description: "Remove the stray character."},
	},
	{
		Code: UnterminatedString, Title: "Unterminated string literal",
		MessageTemplate: "String literal is missing a closing quote",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "tokens",
		HintTemplate: "add a closing '\"' before the end of the line",
		Explanation:  "String literals must be closed on the same line they open.",
		Example:      Example{Bad: "let s = \"hello", Good: "let s = \"hello\"", Description: "Close the string."},
	},
	{
		Code: InvalidEscapeSequence, Title: "Invalid escape sequence",
		MessageTemplate: "Invalid escape sequence '\\{char}' in string literal",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "tokens",
		Explanation: "Only \\n, \\t, \\r, \\\\, \\\" and \\u{...} escapes are recognized.",
		Example:     Example{Bad: "\"a\\qb\"", Good: "\"a\\nb\"", Description: "Use a supported escape."},
	},
	{
		Code: UnterminatedBlockComment, Title: "Unterminated block comment",
		MessageTemplate: "Block comment is never closed",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "tokens",
		Explanation: "Every /* must be matched by a */ before the end of the file.",
		Example:     Example{Bad: "/* comment", Good: "/* comment */", Description: "Close the comment."},
	},
	{
		Code: InvalidNumberLiteral, Title: "Invalid number literal",
		MessageTemplate: "Invalid number literal '{literal}'",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "tokens",
		Explanation: "Number literals must be decimal, hex (0x), octal (0o) or binary (0b) digits.",
		Example:     Example{Bad: "let n = 0x", Good: "let n = 0x1F", Description: "Complete the literal."},
	},
	{
		Code: NumberOutOfRange, Title: "Number literal out of range",
		MessageTemplate: "Number literal '{literal}' does not fit in 64 bits",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "tokens",
		Explanation: "Integer literals are limited to the signed 64-bit range.",
		Example:     Example{Bad: "let n = 99999999999999999999", Good: "let n = 9223372036854775807", Description: "Stay within the 64-bit range."},
	},
	{
		Code: InvalidFloatLiteral, Title: "Invalid float literal",
		MessageTemplate: "Invalid float literal '{literal}'",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "tokens",
		Explanation: "A float literal needs digits on both sides of the decimal point.",
		Example:     Example{Bad: "let x = 1.", Good: "let x = 1.0", Description: "Write digits after the point."},
	},
	{
		Code: InvalidIdentifier, Title: "Invalid identifier",
		MessageTemplate: "'{name}' is not a valid identifier",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "tokens",
		Explanation: "Identifiers start with a letter or underscore and continue with letters, digits or underscores.",
		Example:     Example{Bad: "let 1x = 2", Good: "let x1 = 2", Description: "Identifiers cannot start with a digit."},
	},
	{
		Code: InvalidUnicodeCodepoint, Title: "Invalid unicode codepoint",
		MessageTemplate: "Invalid unicode codepoint in escape: {codepoint}",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "tokens",
		Explanation: "\\u{...} escapes must name a valid unicode scalar value.",
		Example:     Example{Bad: "\"\\u{110000}\"", Good: "\"\\u{1F600}\"", Description: "Codepoints end at U+10FFFF."},
	},
	{
		Code: UnexpectedEOFInToken, Title: "Unexpected end of file",
		MessageTemplate: "Unexpected end of file inside {construct}",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "tokens",
		Explanation: "The file ended in the middle of a token.",
		Example:     Example{Bad: "let s = \"", Good: "let s = \"\"", Description: "Finish the token before EOF."},
	},
	{
		Code: InvalidOperatorSequence, Title: "Invalid operator sequence",
		MessageTemplate: "'{op}' is not a valid operator",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "tokens",
		Explanation: "The characters form no known operator.",
		Example:     Example{Bad: "a =!= b", Good: "a != b", Description: "Use a supported operator."},
	},
	{
		Code: UnknownToken, Title: "Unknown token",
		MessageTemplate: "Cannot tokenize input starting at '{text}'",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "tokens",
		Explanation: "No lexical rule matches the input at this position.",
		Example:     Example{Bad: "let x = #", Good: "let x = 1", Description: "Remove the unrecognized text."},
	},
	{
		Code: UnterminatedInterp, Title: "Unterminated string interpolation",
		MessageTemplate: "String interpolation is missing a closing '}'",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "interpolation",
		Explanation: "Every ${ opened inside a string must be closed before the string ends.",
		Example:     Example{Bad: "\"hi ${name\"", Good: "\"hi ${name}\"", Description: "Close the interpolation."},
	},
	{
		Code: EmptyInterp, Title: "Empty string interpolation",
		MessageTemplate: "String interpolation has no expression",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "interpolation",
		Explanation: "${} must contain an expression.",
		Example:     Example{Bad: "\"hi ${}\"", Good: "\"hi ${name}\"", Description: "Put an expression inside."},
	},
	{
		Code: InterpTooDeep, Title: "Interpolation nested too deeply",
		MessageTemplate: "String interpolation nested deeper than {limit} levels",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "interpolation",
		Explanation: "Interpolations inside interpolated strings are limited in depth.",
		Example:     Example{Bad: "\"${\"${\"${x}\"}\"}\"", Good: "\"${x}\"", Description: "Flatten the nesting."},
	},
	{
		Code: InvalidInterpExpr, Title: "Invalid interpolation expression",
		MessageTemplate: "Cannot parse the expression inside this interpolation",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "interpolation",
		Explanation: "The text between ${ and } must be a complete expression.",
		Example:     Example{Bad: "\"${let}\"", Good: "\"${count}\"", Description: "Interpolate an expression."},
	},
	{
		Code: UnexpectedBraceInString, Title: "Unexpected '}' in string",
		MessageTemplate: "'}' without a matching '${' in string literal",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "interpolation",
		Explanation: "A bare } inside an interpolated string must be escaped.",
		Example:     Example{Bad: "\"a } b\"", Good: "\"a \\} b\"", Description: "Escape the brace."},
	},
	{
		Code: InvalidSourceEncoding, Title: "Invalid source encoding",
		MessageTemplate: "Source file is not valid UTF-8 (byte offset {offset})",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "encoding",
		Explanation: "Source files must be UTF-8 encoded.",
		Example:     Example{Bad: "(latin-1 encoded file)", Good: "(utf-8 encoded file)", Description: "Re-encode the file as UTF-8."},
	},
	{
		Code: SourceTooLarge, Title: "Source file too large",
		MessageTemplate: "Source file exceeds the maximum size of {limit} bytes",
		Severity:        SeverityError, Phase: PhaseLexer, Category: "encoding",
		Explanation: "There is a hard cap on source file size to keep positions in range.",
		Example:     Example{Bad: "(multi-gigabyte file)", Good: "(split into modules)", Description: "Split the file into modules."},
	},

	// ------------------------------------------------------------------
	// Parser (VF2xxx)
	// ------------------------------------------------------------------
	{
		Code: UnexpectedToken, Title: "Unexpected token",
		MessageTemplate: "Unexpected {found}, expected {expected}",
		Severity:        SeverityError, Phase: PhaseParser, Category: "syntax",
		Explanation: "The parser found a token that cannot appear here.",
		Example:     Example{Bad: "let = 1", Good: "let x = 1", Description: "A binding needs a name."},
	},
	{
		Code: MissingClosingParen, Title: "Missing closing parenthesis",
		MessageTemplate: "Missing ')' to close the group opened at {openLoc}",
		Severity:        SeverityError, Phase: PhaseParser, Category: "syntax",
		Explanation: "Every ( must be matched by a ).",
		Example:     Example{Bad: "f(1, 2", Good: "f(1, 2)", Description: "Close the call."},
	},
	{
		Code: MissingClosingBrace, Title: "Missing closing brace",
		MessageTemplate: "Missing '}' to close the block opened at {openLoc}",
		Severity:        SeverityError, Phase: PhaseParser, Category: "syntax",
		Explanation: "Every { must be matched by a }.",
		Example:     Example{Bad: "{ x: 1", Good: "{ x: 1 }", Description: "Close the record."},
	},
	{
		Code: InvalidPattern, Title: "Invalid pattern",
		MessageTemplate: "'{text}' is not a valid pattern",
		Severity:        SeverityError, Phase: PhaseParser, Category: "patterns",
		Explanation: "Match cases accept wildcard, variable, literal, constructor, record and tuple patterns.",
		Example:     Example{Bad: "match x { 1 + 1 -> 2 }", Good: "match x { 2 -> 2 }", Description: "Patterns cannot contain operators."},
	},
	{
		Code: InvalidTypeAnnotation, Title: "Invalid type annotation",
		MessageTemplate: "Cannot parse type annotation",
		Severity:        SeverityError, Phase: PhaseParser, Category: "types",
		Explanation: "The text after ':' must be a type expression.",
		Example:     Example{Bad: "let x: = 1", Good: "let x: Int = 1", Description: "Write a type after the colon."},
	},
	{
		Code: InvalidDeclaration, Title: "Invalid declaration",
		MessageTemplate: "Expected a declaration, found {found}",
		Severity:        SeverityError, Phase: PhaseParser, Category: "syntax",
		Explanation: "Only let, type, external, import and export declarations may appear at the top level.",
		Example:     Example{Bad: "1 + 2", Good: "let x = 1 + 2", Description: "Wrap top-level expressions in a binding."},
	},
	{
		Code: InvalidImport, Title: "Invalid import",
		MessageTemplate: "Cannot parse import declaration",
		Severity:        SeverityError, Phase: PhaseParser, Category: "modules",
		Explanation: "Imports are written `import { a, type B } from \"./mod\"` or `import \"./mod\"`.",
		Example:     Example{Bad: "import x from y", Good: "import { x } from \"./y\"", Description: "Import sources are string literals."},
	},
	{
		Code: InvalidExport, Title: "Invalid export",
		MessageTemplate: "Cannot parse export declaration",
		Severity:        SeverityError, Phase: PhaseParser, Category: "modules",
		Explanation: "Exports list declared names or re-export from another module.",
		Example:     Example{Bad: "export 1", Good: "export { x }", Description: "Export names, not expressions."},
	},
	{
		Code: InvalidRecordSyntax, Title: "Invalid record syntax",
		MessageTemplate: "Cannot parse record literal",
		Severity:        SeverityError, Phase: PhaseParser, Category: "syntax",
		Explanation: "Record literals contain `name: value` fields and `...spread` items.",
		Example:     Example{Bad: "{ x 1 }", Good: "{ x: 1 }", Description: "Fields use a colon."},
	},
	{
		Code: ExpectedExpression, Title: "Expected expression",
		MessageTemplate: "Expected an expression, found {found}",
		Severity:        SeverityError, Phase: PhaseParser, Category: "syntax",
		Explanation: "An expression is required at this position.",
		Example:     Example{Bad: "let x =", Good: "let x = 1", Description: "Provide a right-hand side."},
	},
	{
		Code: InvalidMatchSyntax, Title: "Invalid match expression",
		MessageTemplate: "Cannot parse match expression",
		Severity:        SeverityError, Phase: PhaseParser, Category: "patterns",
		Explanation: "A match lists `pattern -> body` cases separated by commas, with optional `if` guards.",
		Example:     Example{Bad: "match x { }", Good: "match x { _ -> 0 }", Description: "A match needs at least one case."},
	},
	{
		Code: InvalidTypeDeclaration, Title: "Invalid type declaration",
		MessageTemplate: "Cannot parse type declaration",
		Severity:        SeverityError, Phase: PhaseParser, Category: "types",
		Explanation: "Type declarations are aliases, record types or variant types.",
		Example:     Example{Bad: "type T =", Good: "type T = Int", Description: "Provide a body."},
	},
	{
		Code: DuplicateTypeParameter, Title: "Duplicate type parameter",
		MessageTemplate: "Type parameter '{param}' is declared twice",
		Severity:        SeverityError, Phase: PhaseParser, Category: "types",
		Explanation: "Each type parameter name may appear once per declaration.",
		Example:     Example{Bad: "type Pair<a, a> = ...", Good: "type Pair<a, b> = ...", Description: "Rename one parameter."},
	},
	{
		Code: InvalidConstructorDecl, Title: "Invalid constructor declaration",
		MessageTemplate: "Cannot parse variant constructor",
		Severity:        SeverityError, Phase: PhaseParser, Category: "types",
		Explanation: "Variant constructors are capitalized names with optional argument types.",
		Example:     Example{Bad: "type T = a | B", Good: "type T = A | B", Description: "Constructors start with an uppercase letter."},
	},
	{
		Code: UnexpectedEndOfInput, Title: "Unexpected end of input",
		MessageTemplate: "The file ended before the {construct} was complete",
		Severity:        SeverityError, Phase: PhaseParser, Category: "syntax",
		Explanation: "The parser reached end of file with an unfinished construct.",
		Example:     Example{Bad: "let x = match y {", Good: "let x = match y { _ -> 0 }", Description: "Finish the construct."},
	},

	// ------------------------------------------------------------------
	// Desugarer (VF3xxx)
	// ------------------------------------------------------------------
	{
		Code: InvalidSpreadUsage, Title: "Invalid spread usage",
		MessageTemplate: "Spread is only allowed inside record literals",
		Severity:        SeverityError, Phase: PhaseDesugarer, Category: "records",
		Explanation: "The ... spread form splices record fields and has no meaning elsewhere.",
		Example:     Example{Bad: "f(...args)", Good: "{ ...base, x: 1 }", Description: "Spread records, not call arguments."},
	},

	// ------------------------------------------------------------------
	// Type system (VF4xxx)
	// ------------------------------------------------------------------
	{
		Code: TypeMismatch, Title: "Type mismatch",
		MessageTemplate: "Type mismatch: expected {expected}, found {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "unification",
		Explanation: "Two types that must be equal are not.",
		Example:     Example{Bad: "let n: Int = \"x\"", Good: "let n: Int = 1", Description: "The value must match the expected type."},
		RelatedCodes: []string{CannotUnify},
	},
	{
		Code: NumericOperandExpected, Title: "Numeric operand expected",
		MessageTemplate: "Operator '{op}' requires numeric operands, found {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "operators",
		Explanation: "Arithmetic and ordered comparison operators work on Int or Float.",
		Example:     Example{Bad: "\"a\" * 2", Good: "3 * 2", Description: "Multiply numbers."},
	},
	{
		Code: BooleanOperandExpected, Title: "Boolean operand expected",
		MessageTemplate: "Operator '{op}' requires Bool operands, found {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "operators",
		Explanation: "&& and || work on Bool.",
		Example:     Example{Bad: "1 && true", Good: "x > 0 && true", Description: "Both sides must be Bool."},
	},
	{
		Code: StringOperandExpected, Title: "String operand expected",
		MessageTemplate: "Operator '&' requires String operands, found {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "operators",
		Explanation: "& concatenates strings; convert other values first.",
		Example:     Example{Bad: "\"n = \" & 1", Good: "\"n = \" & intToString(1)", Description: "Convert the number."},
	},
	{
		Code: ConditionNotBool, Title: "Condition must be Bool",
		MessageTemplate: "This condition has type {found}, expected Bool",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "operators",
		Explanation: "Guards and conditions must evaluate to Bool.",
		Example:     Example{Bad: "match x { n if n -> 1 }", Good: "match x { n if n > 0 -> 1 }", Description: "Guards are Bool expressions."},
	},
	{
		Code: MixedNumericTypes, Title: "Mixed numeric types",
		MessageTemplate: "Cannot mix Int and Float in '{op}'",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "operators",
		HintTemplate: "convert one operand with intToFloat or floatToInt",
		Explanation:  "Arithmetic never converts implicitly between Int and Float.",
		Example:      Example{Bad: "1 + 2.0", Good: "intToFloat(1) + 2.0", Description: "Convert explicitly."},
	},
	{
		Code: AssignTargetNotRef, Title: "Assignment target is not a reference",
		MessageTemplate: "Left side of ':=' has type {found}, expected Ref<_>",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "refs",
		Explanation: ":= stores into a mutable reference cell created with ref().",
		Example:     Example{Bad: "let x = 1\nx := 2", Good: "let mutable x = 1\nx := 2", Description: "Only refs can be assigned."},
	},
	{
		Code: DerefNonRef, Title: "Dereference of a non-reference",
		MessageTemplate: "Operator '!' requires a Ref<_>, found {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "refs",
		Explanation: "! reads the current value out of a reference cell.",
		Example:     Example{Bad: "!1", Good: "!r", Description: "Dereference refs only."},
	},
	{
		Code: ConsNotList, Title: "Cons onto a non-list",
		MessageTemplate: "Right side of '::' has type {found}, expected List<{elem}>",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "operators",
		Explanation: ":: prepends an element to a list of the same element type.",
		Example:     Example{Bad: "1 :: 2", Good: "1 :: [2, 3]", Description: "The tail must be a list."},
	},
	{
		Code: MatchArmTypeMismatch, Title: "Match arms have different types",
		MessageTemplate: "This match arm has type {found}, but earlier arms have type {expected}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "match",
		Explanation: "Every arm of a match must produce the same type.",
		Example:     Example{Bad: "match x { 0 -> 1, _ -> \"a\" }", Good: "match x { 0 -> 1, _ -> 2 }", Description: "Make the arms agree."},
	},
	{
		Code: AnnotationMismatch, Title: "Annotation mismatch",
		MessageTemplate: "Expression has type {found}, which does not match the annotation {expected}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "unification",
		Explanation: "The inferred type of the expression must unify with its annotation.",
		Example:     Example{Bad: "(1 : String)", Good: "(1 : Int)", Description: "Fix the annotation or the expression."},
	},
	{
		Code: RecursiveBindingMismatch, Title: "Recursive binding type mismatch",
		MessageTemplate: "Recursive binding '{name}' is used at type {expected} but defined at type {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "let",
		Explanation: "A recursive binding's uses inside its own body must agree with its definition.",
		Example:     Example{Bad: "let rec f = (x) -> f", Good: "let rec f = (x) -> f(x)", Description: "The recursive call must fit the definition."},
	},
	{
		Code: NotAFunction, Title: "Not a function",
		MessageTemplate: "Cannot call a value of type {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "application",
		Explanation: "Only functions can be applied to arguments.",
		Example:     Example{Bad: "let x = 1\nx(2)", Good: "let f = (y) -> y\nf(2)", Description: "Call functions only."},
	},
	{
		Code: SpreadNonRecord, Title: "Spread of a non-record",
		MessageTemplate: "Cannot spread a value of type {found} into a record",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "records",
		Explanation: "Only records can be spread into record literals.",
		Example:     Example{Bad: "{ ...1, x: 2 }", Good: "{ ...base, x: 2 }", Description: "Spread records only."},
	},
	{
		Code: UpdateNonRecord, Title: "Update of a non-record",
		MessageTemplate: "Cannot update fields on a value of type {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "records",
		Explanation: "Record update requires a record base.",
		Example:     Example{Bad: "{ 1 | x: 2 }", Good: "{ r | x: 2 }", Description: "Update records only."},
	},
	{
		Code: UnionNotSupported, Title: "Union type not supported here",
		MessageTemplate: "Cannot use the union type {found} here; narrowing is not supported",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "unions",
		Explanation: "The language has no type-test patterns, so unions of primitives cannot be narrowed at use sites.",
		Example:     Example{Bad: "let f = (x: Int | String) -> x + 1", Good: "let f = (x: Int) -> x + 1", Description: "Use a variant type instead."},
	},
	{
		Code: UnificationFailure, Title: "Unification failure",
		MessageTemplate: "Cannot unify {left} with {right}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "unification",
		Explanation: "No substitution makes the two types equal.",
		Example:     Example{Bad: "let xs = [1, \"a\"]", Good: "let xs = [1, 2]", Description: "List elements share one type."},
	},
	{
		Code: FunctionArityMismatch, Title: "Function arity mismatch",
		MessageTemplate: "Function takes {expected} parameter(s) but the type requires {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "unification",
		Explanation: "Two function types unify only with equal parameter counts.",
		Example:     Example{Bad: "let f: (Int, Int) -> Int = (x) -> x", Good: "let f: (Int) -> Int = (x) -> x", Description: "Match the arity."},
	},
	{
		Code: TypeArgArityMismatch, Title: "Type argument arity mismatch",
		MessageTemplate: "Type application has {found} argument(s), expected {expected}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "unification",
		Explanation: "A type constructor is applied to a fixed number of arguments.",
		Example:     Example{Bad: "let xs: List<Int, Int> = []", Good: "let xs: List<Int> = []", Description: "List takes one argument."},
	},
	{
		Code: TupleArityMismatch, Title: "Tuple arity mismatch",
		MessageTemplate: "Tuple has {found} element(s), expected {expected}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "unification",
		Explanation: "Tuples of different lengths never unify.",
		Example:     Example{Bad: "let p: (Int, Int) = (1, 2, 3)", Good: "let p: (Int, Int) = (1, 2)", Description: "Match the length."},
	},
	{
		Code: CannotUnify, Title: "Cannot unify types",
		MessageTemplate: "Cannot unify {left} with {right}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "unification",
		Explanation: "The two type constructors are structurally incompatible.",
		Example:     Example{Bad: "let n: Int = true", Good: "let n: Bool = true", Description: "Int and Bool are distinct."},
		RelatedCodes: []string{TypeMismatch},
	},
	{
		Code: VariantMismatch, Title: "Variant type mismatch",
		MessageTemplate: "Variant type {left} is not {right}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "variants",
		Explanation: "Variant identity is nominal: two declarations with identical constructors are still distinct types.",
		Example:     Example{Bad: "type A = X\ntype B = X\nlet a: A = (X : B)", Good: "let a: A = X", Description: "Use the declared type."},
		RelatedCodes: []string{VariantIdentityMismatch},
	},
	{
		Code: UnknownVariable, Title: "Unknown variable",
		MessageTemplate: "Unknown variable '{name}'",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "names",
		HintTemplate: "did you mean '{suggestion}'?",
		Explanation:  "The name is not bound in the current scope.",
		Example:      Example{Bad: "let n = lenght(xs)", Good: "let n = length(xs)", Description: "Check the spelling."},
	},
	{
		Code: UnknownTypeName, Title: "Unknown type",
		MessageTemplate: "Unknown type '{name}'",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "names",
		HintTemplate: "did you mean '{suggestion}'?",
		Explanation:  "The type name is not declared or imported.",
		Example:      Example{Bad: "let x: Strng = \"a\"", Good: "let x: String = \"a\"", Description: "Check the spelling."},
	},
	{
		Code: UnknownConstructor, Title: "Unknown constructor",
		MessageTemplate: "Unknown constructor '{name}'",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "names",
		HintTemplate: "did you mean '{suggestion}'?",
		Explanation:  "No variant type in scope declares this constructor.",
		Example:      Example{Bad: "let c = Redd", Good: "let c = Red", Description: "Check the spelling."},
	},
	{
		Code: DuplicateDefinition, Title: "Duplicate definition",
		MessageTemplate: "'{name}' is already defined in this module",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "names",
		Explanation: "A top-level name may be declared once per module.",
		Example:     Example{Bad: "let x = 1\nlet x = 2", Good: "let x = 1\nlet y = 2", Description: "Rename one of them."},
	},
	{
		Code: CtorArityMismatch, Title: "Constructor arity mismatch",
		MessageTemplate: "Constructor '{ctor}' takes {expected} argument(s), found {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "variants",
		Explanation: "A variant constructor must be applied to exactly the declared number of arguments.",
		Example:     Example{Bad: "Some(1, 2)", Good: "Some(1)", Description: "Some takes one argument."},
	},
	{
		Code: NoMatchingOverload, Title: "No matching overload",
		MessageTemplate: "No overload of '{name}' accepts argument type {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "externals",
		Explanation: "None of the declared external signatures fits this call.",
		Example:     Example{Bad: "parse(true)", Good: "parse(\"1\")", Description: "Check the declared signatures."},
	},
	{
		Code: UnappliedOverload, Title: "Overloaded external used without application",
		MessageTemplate: "Overloaded external '{name}' must be called directly",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "externals",
		Explanation: "Outside a call there is no argument information to pick one signature.",
		Example:     Example{Bad: "let f = parse", Good: "let f = (s) -> parse(s)", Description: "Wrap the overload in a lambda."},
	},
	{
		Code: TuplePatternArity, Title: "Tuple pattern arity mismatch",
		MessageTemplate: "Tuple pattern has {found} element(s) but the value has {expected}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "patterns",
		Explanation: "A tuple pattern must name every element of the tuple.",
		Example:     Example{Bad: "match p { (a) -> a }", Good: "match p { (a, b) -> a }", Description: "Match all elements."},
	},
	{
		Code: DuplicateRecordField, Title: "Duplicate record field",
		MessageTemplate: "Field '{field}' appears more than once",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "records",
		Explanation: "Record types and record patterns list each field once.",
		Example:     Example{Bad: "type P = { x: Int, x: Int }", Good: "type P = { x: Int, y: Int }", Description: "Rename one field."},
	},
	{
		Code: AmbiguousOverload, Title: "Ambiguous overload",
		MessageTemplate: "Call to '{name}' matches {count} overloads",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "externals",
		HintTemplate: "annotate the argument to pick one signature",
		Explanation:  "More than one declared signature fits the argument types.",
		Example:      Example{Bad: "show(xs)", Good: "show(xs : List<Int>)", Description: "Annotate to disambiguate."},
	},
	{
		Code: InfiniteType, Title: "Infinite type",
		MessageTemplate: "Cannot construct the infinite type {var} = {type}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "unification",
		Explanation: "The occurs check found a type variable inside its own solution; such a type would be infinite.",
		Example:     Example{Bad: "let f = (x) -> x(x)", Good: "let f = (x) -> x", Description: "Self-application has no finite type."},
	},
	{
		Code: CyclicTypeAlias, Title: "Cyclic type alias",
		MessageTemplate: "Type alias '{name}' refers to itself",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "declarations",
		Explanation: "Aliases expand at use sites, so a self-referential alias would never terminate. Recursive types must go through a variant or record declaration.",
		Example:     Example{Bad: "type T = List<T>", Good: "type T = Node(List<T>)", Description: "Make the recursion nominal."},
	},
	{
		Code: NonExhaustiveMatch, Title: "Non-exhaustive match",
		MessageTemplate: "This match does not cover: {missing}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "match",
		HintTemplate: "add the missing case(s) or a wildcard '_' case",
		Explanation:  "Every possible value of the scrutinee type must be matched by some case. Guarded cases do not count because the guard may be false.",
		Example:      Example{Bad: "match c { Red -> 1 }", Good: "match c { Red -> 1, _ -> 0 }", Description: "Cover the remaining constructors."},
	},
	{
		Code: DuplicateConstructor, Title: "Duplicate constructor",
		MessageTemplate: "Constructor '{ctor}' is declared more than once",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "declarations",
		Explanation: "Constructor names must be unique across the variant types of a module.",
		Example:     Example{Bad: "type T = A | A", Good: "type T = A | B", Description: "Rename one constructor."},
	},
	{
		Code: DuplicatePatternBinding, Title: "Duplicate binding in pattern",
		MessageTemplate: "Name '{name}' is bound more than once in this pattern",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "patterns",
		Explanation: "Each variable may appear once per pattern.",
		Example:     Example{Bad: "match p { (x, x) -> x }", Good: "match p { (x, y) -> x }", Description: "Rename one binding."},
	},
	{
		Code: CtorPatternNonVariant, Title: "Constructor pattern on non-variant",
		MessageTemplate: "Constructor pattern '{ctor}' cannot match a value of type {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "patterns",
		Explanation: "Constructor patterns only match values of the variant type that declares the constructor.",
		Example:     Example{Bad: "match 1 { Some(x) -> x }", Good: "match opt { Some(x) -> x, None -> 0 }", Description: "Match variants with constructors."},
	},
	{
		Code: AccessNonRecord, Title: "Field access on a non-record",
		MessageTemplate: "Cannot access field '{field}' on a value of type {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "records",
		Explanation: "Only records have fields.",
		Example:     Example{Bad: "1.x", Good: "point.x", Description: "Access fields on records."},
	},
	{
		Code: MissingField, Title: "Missing record field",
		MessageTemplate: "Record type {record} has no field '{field}'",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "records",
		Explanation: "The record type does not declare the requested field.",
		Example:     Example{Bad: "{ x: 1 }.y", Good: "{ x: 1, y: 2 }.y", Description: "The field must exist."},
	},
	{
		Code: UpdateUnknownField, Title: "Update of an unknown field",
		MessageTemplate: "Cannot update field '{field}': the record type {record} does not have it",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "records",
		Explanation: "Record update changes existing fields; it cannot add new ones.",
		Example:     Example{Bad: "{ p | z: 3 }", Good: "{ p | x: 3 }", Description: "Update declared fields only."},
	},
	{
		Code: WrongTypeArguments, Title: "Wrong number of type arguments",
		MessageTemplate: "Type '{name}' takes {expected} argument(s), found {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "declarations",
		Explanation: "A declared type must be applied to exactly its declared parameters.",
		Example:     Example{Bad: "let x: Option = None", Good: "let x: Option<Int> = None", Description: "Supply the type argument."},
	},
	{
		Code: UnboundTypeParameter, Title: "Unbound type parameter",
		MessageTemplate: "Type variable '{name}' is not declared as a parameter",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "declarations",
		Explanation: "Type declaration bodies may only use the parameters listed on the declaration.",
		Example:     Example{Bad: "type Box<a> = { value: b }", Good: "type Box<a> = { value: a }", Description: "Declare every parameter."},
	},
	{
		Code: VariantIdentityMismatch, Title: "Distinct variant types",
		MessageTemplate: "Expected variant type {expected}, found {found}",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "variants",
		Explanation: "Variant types are nominal; structurally identical declarations remain distinct.",
		Example:     Example{Bad: "type A = X\ntype B = X\nlet f = (a: A) -> a\nf(X : B)", Good: "f(X : A)", Description: "Use a value of the declared type."},
		RelatedCodes: []string{VariantMismatch},
	},
	{
		Code: InvalidExternalSignature, Title: "Invalid external signature",
		MessageTemplate: "External '{name}' has an invalid signature",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "externals",
		Explanation: "External declarations need a complete, closed type annotation.",
		Example:     Example{Bad: "external f = \"f\"", Good: "external f: (Int) -> Int = \"f\"", Description: "Annotate the external."},
	},
	{
		Code: DuplicateExternal, Title: "Duplicate external signature",
		MessageTemplate: "External '{name}' declares the same signature twice",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "externals",
		Explanation: "Overloads of one external name must have distinct signatures.",
		Example:     Example{Bad: "external f: (Int) -> Int = \"f\"\nexternal f: (Int) -> Int = \"f\"", Good: "external f: (Int) -> Int = \"f\"\nexternal f: (String) -> Int = \"f\"", Description: "Each overload differs."},
	},
	{
		Code: AssignToImmutable, Title: "Assignment to an immutable binding",
		MessageTemplate: "Cannot assign to '{name}': it is not declared mutable",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "refs",
		HintTemplate: "declare it with 'let mutable {name} = ...'",
		Explanation:  "Only mutable bindings are reference cells that := can store into.",
		Example:      Example{Bad: "let x = 1\nx := 2", Good: "let mutable x = 1\nx := 2", Description: "Mark the binding mutable."},
	},
	{
		Code: UnsafeRequired, Title: "Unsafe block required",
		MessageTemplate: "'{operation}' is only allowed inside an unsafe block",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "unsafe",
		Explanation: "Operations with unchecked runtime behavior must be wrapped in unsafe { ... }.",
		Example:     Example{Bad: "jsRaw(\"...\")", Good: "unsafe { jsRaw(\"...\") }", Description: "Wrap the call."},
	},
	{
		Code: DerefOutsideUnsafe, Title: "Unchecked dereference outside unsafe",
		MessageTemplate: "Unchecked dereference requires an unsafe block",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "unsafe",
		Explanation: "Bypassing the null check is only permitted inside unsafe { ... }.",
		Example:     Example{Bad: "unwrapUnchecked(x)", Good: "unsafe { unwrapUnchecked(x) }", Description: "Wrap the call."},
	},
	{
		Code: RefEscapesUnsafe, Title: "Reference escapes unsafe block",
		MessageTemplate: "A raw reference created in this unsafe block escapes it",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "unsafe",
		Explanation: "Raw references obtained inside unsafe { ... } may not outlive the block.",
		Example:     Example{Bad: "let r = unsafe { rawRef(x) }", Good: "unsafe { use(rawRef(x)) }", Description: "Keep raw references inside the block."},
	},
	{
		Code: InvalidUnsafeBlock, Title: "Invalid unsafe block",
		MessageTemplate: "Unsafe block has no effect here",
		Severity:        SeverityError, Phase: PhaseTypechecker, Category: "unsafe",
		Explanation: "unsafe { ... } marks code for the code generator; it cannot wrap declarations.",
		Example:     Example{Bad: "unsafe { let x = 1 }", Good: "let x = unsafe { jsRaw(\"1\") }", Description: "Wrap expressions, not declarations."},
	},
	{
		Code: UnreachableMatchCase, Title: "Unreachable match case",
		MessageTemplate: "This case is unreachable: earlier cases already match every value it covers",
		Severity:        SeverityWarning, Phase: PhaseTypechecker, Category: "match",
		Explanation: "Cases are tried top to bottom; a case subsumed by earlier ones never runs.",
		Example:     Example{Bad: "match x { _ -> 0, Red -> 1 }", Good: "match x { Red -> 1, _ -> 0 }", Description: "Order specific cases first."},
	},

	// ------------------------------------------------------------------
	// Modules (VF5xxx)
	// ------------------------------------------------------------------
	{
		Code: ModuleNotFound, Title: "Module not found",
		MessageTemplate: "Cannot find module '{path}'",
		Severity:        SeverityError, Phase: PhaseModules, Category: "resolution",
		HintTemplate: "did you mean '{suggestion}'?",
		Explanation:  "No file matches the import path after trying the candidate locations.",
		Example:      Example{Bad: "import { x } from \"./utls\"", Good: "import { x } from \"./utils\"", Description: "Check the path."},
	},
	{
		Code: UnsupportedURLImport, Title: "URL imports are not supported",
		MessageTemplate: "Cannot import from URL '{path}'",
		Severity:        SeverityError, Phase: PhaseModules, Category: "resolution",
		Explanation: "http://, https:// and file:// import specifiers are not supported.",
		Example:     Example{Bad: "import { x } from \"https://example.com/m.vf\"", Good: "import { x } from \"./m\"", Description: "Vendor the file locally."},
	},
	{
		Code: UnsupportedExtension, Title: "Unsupported import extension",
		MessageTemplate: "Cannot import '{path}': only .vf files can be imported",
		Severity:        SeverityError, Phase: PhaseModules, Category: "resolution",
		Explanation: "Explicit file imports must name a .vf source file.",
		Example:     Example{Bad: "import { x } from \"./data.json\"", Good: "import { x } from \"./data\"", Description: "Import modules, not data files."},
	},
	{
		Code: CircularSymlink, Title: "Circular symlink",
		MessageTemplate: "Symlink chain starting at '{path}' never resolves to a file",
		Severity:        SeverityError, Phase: PhaseModules, Category: "resolution",
		Explanation: "The import resolved to a symlink loop on disk.",
		Example:     Example{Bad: "a.vf -> b.vf -> a.vf (symlinks)", Good: "a real file", Description: "Fix the links on disk."},
	},
	{
		Code: SelfImport, Title: "Module imports itself",
		MessageTemplate: "Module '{path}' imports itself",
		Severity:        SeverityError, Phase: PhaseModules, Category: "cycles",
		Explanation: "A self-import is never useful: every name it could provide is already in scope.",
		Example:     Example{Bad: "// in a.vf\nimport { x } from \"./a\"", Good: "// delete the import", Description: "Remove the self-import."},
	},
	{
		Code: InvalidEntryPoint, Title: "Invalid entry point",
		MessageTemplate: "Cannot use '{path}' as an entry point",
		Severity:        SeverityError, Phase: PhaseModules, Category: "resolution",
		HintTemplate: "tried: {tried}",
		Explanation:  "The entry must be a .vf file or a directory containing index.vf.",
		Example:      Example{Bad: "vibefun check ./src-dir-without-index", Good: "vibefun check ./src/main.vf", Description: "Point at a module file."},
	},
	{
		Code: MalformedConfig, Title: "Malformed vibefun.json",
		MessageTemplate: "Cannot parse {path}: {error}",
		Severity:        SeverityError, Phase: PhaseModules, Category: "config",
		Explanation: "vibefun.json must be valid JSON with the documented shape.",
		Example:     Example{Bad: "{ \"compilerOptions\": }", Good: "{ \"compilerOptions\": {} }", Description: "Fix the JSON."},
	},
	{
		Code: InvalidPathMapping, Title: "Invalid path mapping",
		MessageTemplate: "Invalid path mapping for pattern '{pattern}'",
		Severity:        SeverityError, Phase: PhaseModules, Category: "config",
		Explanation: "Each paths entry maps a pattern with at most one '*' to an array of targets.",
		Example:     Example{Bad: "\"paths\": { \"@app/*\": \"./src/*\" }", Good: "\"paths\": { \"@app/*\": [\"./src/*\"] }", Description: "Targets are arrays."},
	},
	{
		Code: ImportNotExported, Title: "Import of a name that is not exported",
		MessageTemplate: "Module '{module}' does not export '{name}'",
		Severity:        SeverityError, Phase: PhaseModules, Category: "resolution",
		Explanation: "Only exported names can be imported from a module.",
		Example:     Example{Bad: "import { helper } from \"./m\" // not exported", Good: "// in m.vf\nexport { helper }", Description: "Export the name first."},
	},
	{
		Code: CircularDependency, Title: "Circular module dependency",
		MessageTemplate: "Circular dependency: {cycle}",
		Severity:        SeverityWarning, Phase: PhaseModules, Category: "cycles",
		HintTemplate: "break the cycle by moving shared definitions into a new module, or make the imports type-only",
		Explanation:  "Modules in a value cycle cannot be initialized in a well-defined order. Cycles whose edges are all type-only are safe and produce no warning.",
		Example:      Example{Bad: "a imports b, b imports a", Good: "a and b import shared c", Description: "Extract the shared part."},
	},
	{
		Code: CasingMismatch, Title: "Import casing mismatch",
		MessageTemplate: "Import '{path}' differs from the file on disk only by case ('{actual}')",
		Severity:        SeverityWarning, Phase: PhaseModules, Category: "resolution",
		Explanation: "Case-insensitive filesystems accept the import, case-sensitive ones will not; builds break when the project moves between them.",
		Example:     Example{Bad: "import { x } from \"./Utils\"", Good: "import { x } from \"./utils\"", Description: "Match the on-disk casing."},
	},
}

package diagnostic

// Rule identifiers. They are stable and safe to use for suppression.
const (
	AddValidationMethod = "AddValidationMethod"

	TypeCannotBeNested                      = "VOG001"
	UnderlyingTypeMustNotBeSameAsValueObject = "VOG002"
	UnderlyingTypeCannotBeCollection        = "VOG003"
	DuplicateMarker                         = "VOG004"
	ConflictingDefaults                     = "VOG005"
	InstanceNameInvalid                     = "VOG006"
	InstanceValueMissing                    = "VOG007"
	CannotHaveUserConstructors              = "VOG008"
	DoNotUseDefault                         = "VOG009"
	DoNotUseNew                             = "VOG010"
	InvalidConversions                      = "VOG011"
	CustomExceptionMustDeriveFromException  = "VOG012"
	CustomExceptionMustHaveValidConstructor = "VOG013"
	UnknownType                             = "VOG014"
	TypeCannotBeAbstract                    = "VOG017"
	InvalidArgument                         = "VOG018"
	InvalidCustomizations                   = "VOG019"
	StringMethodShouldUseValueReceiver      = "VOG020"
	TypeShouldBePartial                     = "VOG021"
	InstanceValueCannotBeConverted          = "VOG023"
	DuplicateTypesFound                     = "VOG024"
	DoNotUseReflection                      = "VOG025"
	MustHaveInstances                       = "VOG026"
)

// Property keys understood by fix-it tooling.
const (
	PropPrimitiveType = "PrimitiveType"
	PropTypeName      = "TypeName"
	PropAxis          = "Axis"
	PropName          = "Name"
)

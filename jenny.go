package aritygen

// A Jenny is an aritygen code generator.
//
// Each Jenny works with exactly one type of input, indicated by its type
// parameter. aritygen names these type parameters "Input" as a hint to humans
// that a particular type parameter is used in this way. The generators in this
// module take an arity (an int) as Input.
//
// Each Jenny takes either one or many Inputs, and produces zero, one, or many
// output files. A Jenny must also implement exactly one of [OneToOne],
// [OneToMany], [ManyToOne] or [ManyToMany]; Go's generics cannot yet express
// that union as part of the Jenny interface itself.
type Jenny[Input any] interface {
	NamedJenny
}

// NamedJenny is the non-generic part of every [Jenny].
type NamedJenny interface {
	// JennyName returns the name of the generator.
	JennyName() string
}

// OneToOne is a Jenny that generates at most one file per Input.
type OneToOne[Input any] interface {
	Jenny[Input]

	// Generate takes an Input and generates one [File], or none (nil) if the
	// jenny was a no-op for the provided Input.
	Generate(Input) (*File, error)
}

// OneToMany is a Jenny that generates any number of files per Input.
type OneToMany[Input any] interface {
	Jenny[Input]

	// Generate takes an Input and generates many [File]s, or none (nil) if the
	// jenny was a no-op for the provided Input.
	Generate(Input) (Files, error)
}

// ManyToOne is a Jenny that sees all Inputs at once and generates at most one
// file from them, such as a file shared by every arity of a type family.
type ManyToOne[Input any] interface {
	Jenny[Input]

	// Generate takes all Inputs and generates one File. A nil File indicates
	// the jenny was a no-op for the provided Inputs.
	Generate(...Input) (*File, error)
}

// ManyToMany is a Jenny that accepts many inputs, and produces 0 to N files as output.
type ManyToMany[Input any] interface {
	Jenny[Input]

	// Generate takes all Inputs and generates many [File]s.
	//
	// A nil, nil return is used to indicate the generator had nothing to do for
	// the provided Inputs.
	Generate(...Input) (Files, error)
}

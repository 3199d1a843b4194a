package aritygen

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// NewJennyList creates an empty, named JennyList.
func NewJennyList[Input any](name string) *JennyList[Input] {
	return &JennyList[Input]{name: name}
}

// JennyListWithNamer creates a new JennyList that decorates errors using the
// provided namer func, which can derive a meaningful identifier string from an
// Input, such as "arity 3" for an int.
func JennyListWithNamer[Input any](namer func(t Input) string) *JennyList[Input] {
	return &JennyList[Input]{
		inputnamer: namer,
	}
}

// JennyList is an ordered collection of jennies. JennyList itself implements
// [ManyToMany], and when called, will construct an [FS] by calling each of its
// contained jennies in order. JennyLists nest: a list of the jennies of one
// type family can be appended to the list that generates every family.
//
// The File outputs of all member jennies in a JennyList exist in the same
// relative path namespace. JennyList does not modify emitted paths. Path
// uniqueness (per [Files.Validate]) is enforced across the aggregate set of
// Files.
type JennyList[Input any] struct {
	mut sync.RWMutex

	name    string
	jennies []NamedJenny

	// postprocessors, to be run on every file returned from each contained jenny
	post []FileMapper

	// inputnamer, if non-nil, gives a name to an input.
	inputnamer func(t Input) string
}

// JennyName returns the name given to [NewJennyList], or a name derived from
// the Input type.
func (js *JennyList[Input]) JennyName() string {
	if js.name != "" {
		return js.name
	}
	return fmt.Sprintf("JennyList[%s]", reflect.TypeOf(new(Input)).Elem().Name())
}

// WithNamer sets the func used to decorate errors with the Input that caused
// them, and returns js.
func (js *JennyList[Input]) WithNamer(namer func(t Input) string) *JennyList[Input] {
	js.mut.Lock()
	js.inputnamer = namer
	js.mut.Unlock()
	return js
}

func (js *JennyList[Input]) wrapinerr(in Input, err error) error {
	if err == nil {
		return nil
	}
	if js.inputnamer == nil {
		return err
	}
	return fmt.Errorf("%w for %s", err, js.inputnamer(in))
}

// GenerateFS runs every jenny in order over objs and collects their output,
// postprocessed, into a new FS. Errors from all jennies are aggregated.
func (js *JennyList[Input]) GenerateFS(objs ...Input) (*FS, error) {
	js.mut.RLock()
	defer js.mut.RUnlock()

	jfs := NewFS()
	if len(js.jennies) == 0 {
		return jfs, nil
	}

	manyout := func(j NamedJenny, fl Files, err error) error {
		if err != nil {
			return fmt.Errorf("%s: %w", j.JennyName(), err)
		}

		for i := range fl {
			fl[i].From = append(fl[i].From, j)
		}
		if err = fl.Validate(); err != nil {
			return fmt.Errorf("%s returned invalid Files: %w", j.JennyName(), err)
		}

		for i, f := range fl {
			for _, post := range js.post {
				of, err := post(f)
				if err != nil {
					return fmt.Errorf("postprocessing of %s from %s failed: %w", f.RelativePath, jennystack(f.From), err)
				}
				f = of
			}
			fl[i] = f
		}
		return jfs.add(fl...)
	}
	oneout := func(j NamedJenny, f *File, err error) error {
		var fl Files
		if f != nil && f.Exists() {
			fl = Files{*f}
		}
		if err == nil && len(fl) == 0 {
			return nil
		}
		return manyout(j, fl, err)
	}

	result := new(multierror.Error)
	for _, nj := range js.jennies {
		var handlerr error
		switch jenny := nj.(type) {
		case OneToOne[Input]:
			for _, obj := range objs {
				f, err := jenny.Generate(obj)
				if procerr := js.wrapinerr(obj, oneout(jenny, f, err)); procerr != nil {
					result = multierror.Append(result, procerr)
				}
			}
		case OneToMany[Input]:
			for _, obj := range objs {
				fl, err := jenny.Generate(obj)
				if procerr := js.wrapinerr(obj, manyout(jenny, fl, err)); procerr != nil {
					result = multierror.Append(result, procerr)
				}
			}
		case ManyToOne[Input]:
			f, err := jenny.Generate(objs...)
			handlerr = oneout(jenny, f, err)
		case ManyToMany[Input]:
			fl, err := jenny.Generate(objs...)
			handlerr = manyout(jenny, fl, err)
		default:
			panic("unreachable")
		}

		if handlerr != nil {
			result = multierror.Append(result, handlerr)
		}
	}

	if result.ErrorOrNil() != nil {
		return nil, multierror.Flatten(result)
	}
	return jfs, nil
}

// Generate implements [ManyToMany].
func (js *JennyList[Input]) Generate(objs ...Input) (Files, error) {
	jfs, err := js.GenerateFS(objs...)
	if err != nil {
		return nil, err
	}
	return jfs.AsFiles(), nil
}

// Append adds Jennies to the end of the JennyList. In Generate, Jennies are
// called in the order they were appended.
//
// All provided jennies must also implement one of [OneToOne], [OneToMany],
// [ManyToOne], [ManyToMany], or this method will panic. For proper type safety,
// use the Append* methods.
func (js *JennyList[Input]) Append(jennies ...Jenny[Input]) {
	for _, j := range jennies {
		switch j.(type) {
		case OneToOne[Input], OneToMany[Input], ManyToOne[Input], ManyToMany[Input]:
		default:
			panic(fmt.Sprintf("%T is not a valid Jenny, must implement (OneToOne | OneToMany | ManyToOne | ManyToMany)", j))
		}
	}
	js.append(tonamed(jennies...)...)
}

// AppendOneToOne is like [JennyList.Append], but typesafe for OneToOne jennies.
func (js *JennyList[Input]) AppendOneToOne(jennies ...OneToOne[Input]) {
	js.append(tonamed(jennies...)...)
}

// AppendOneToMany is like [JennyList.Append], but typesafe for OneToMany jennies.
func (js *JennyList[Input]) AppendOneToMany(jennies ...OneToMany[Input]) {
	js.append(tonamed(jennies...)...)
}

// AppendManyToOne is like [JennyList.Append], but typesafe for ManyToOne jennies.
func (js *JennyList[Input]) AppendManyToOne(jennies ...ManyToOne[Input]) {
	js.append(tonamed(jennies...)...)
}

// AppendManyToMany is like [JennyList.Append], but typesafe for ManyToMany jennies.
func (js *JennyList[Input]) AppendManyToMany(jennies ...ManyToMany[Input]) {
	js.append(tonamed(jennies...)...)
}

func (js *JennyList[Input]) append(jennies ...NamedJenny) {
	js.mut.Lock()
	js.jennies = append(js.jennies, jennies...)
	js.mut.Unlock()
}

func tonamed[J NamedJenny](jennies ...J) []NamedJenny {
	nlist := make([]NamedJenny, len(jennies))
	for i, j := range jennies {
		nlist[i] = j
	}
	return nlist
}

// AddPostprocessors appends a slice of FileMapper to its internal list of
// postprocessors.
//
// Postprocessors are run (FIFO) on every File produced by the JennyList.
func (js *JennyList[Input]) AddPostprocessors(fn ...FileMapper) {
	js.mut.Lock()
	js.post = append(js.post, fn...)
	js.mut.Unlock()
}

package custom

const (
	NameCallback = "callback"

	NameFs         = "fs"
	NameFsRead     = "read"
	NameFsReadSync = "readSync"
)

// Names are the parameter and result names of a function of the fs object,
// in canonical (fully positional) order.
type Names struct {
	// Name is the function name, e.g. "read".
	Name string

	// ParamNames are the normalized parameter names, ending with
	// NameCallback for callback style functions.
	ParamNames []string

	// ResultNames are the names of values passed to the callback, or the
	// returned values of a synchronous function.
	ResultNames []string
}

// FsNameSection are the functions defined in the object named NameFs.
var FsNameSection = map[string]*Names{
	NameFsRead: {
		Name:        NameFsRead,
		ParamNames:  []string{"fd", "buffer", "offset", "length", "position", NameCallback},
		ResultNames: []string{"err", "n", "buffer"},
	},
	NameFsReadSync: {
		Name:        NameFsReadSync,
		ParamNames:  []string{"fd", "buffer", "offset", "length", "position"},
		ResultNames: []string{"err", "n"},
	},
}

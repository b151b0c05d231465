package ead

// Result is the output of one publication render.
type Result struct {
	Archive  *Archive
	XML      []byte
	Warnings []Warning
}

// Render validates req, builds the archive and serializes it. On error no
// document is returned.
func Render(req Request) (*Result, error) {
	archive, err := New(req)
	if err != nil {
		return nil, err
	}

	out, err := Serialize(archive)
	if err != nil {
		return nil, err
	}

	return &Result{
		Archive:  archive,
		XML:      out,
		Warnings: archive.Warnings(),
	}, nil
}

package common

const (
	// SrcFileExtension is the file extension expected of SRC input files.
	SrcFileExtension = ".py"

	// DstFileExtension is the file extension used for emitted DST source files.
	DstFileExtension = ".rs"

	// ManifestFileName is the name of the synthesized DST build manifest.
	ManifestFileName = "Cargo.toml"

	// StubFileName is the name of a stub package's descriptor file.
	StubFileName = "_ferroc.toml"

	// Version is the current ferroc release version.
	Version = "0.1.0"

	// StubPathEnvVar is the optional environment variable naming an
	// additional shared directory to search for stub packages.
	StubPathEnvVar = "FERROC_STUB_PATH"
)

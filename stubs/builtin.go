package stubs

// Builtin returns the registry of call rewrites for SRC standard-library
// modules that ship with ferroc itself, so a transpile does not need an
// external _ferroc.toml just to call time.sleep or json.dumps. Grounded on
// the original codegen/stdlib/{time,logging,rust_std}_map.py tables; the
// {self}/{args} template placeholders and needs_result/imports fields carry
// over directly, condensed into one Go map literal per SRC module instead
// of one Python dict per file.
func Builtin() *Registry {
	reg := &Registry{packages: []*Package{builtinTime(), builtinLogging(), builtinOS(), builtinJSON(), builtinChannel()}}
	return reg
}

func builtinTime() *Package {
	return &Package{
		Name: "builtin-time", Crate: "std", SrcModule: "time",
		Functions: map[string]FuncMapping{
			"time.time": {
				SrcName:  "time.time",
				Template: "std::time::SystemTime::now().duration_since(std::time::UNIX_EPOCH).unwrap().as_secs_f64()",
				Returns:  "f64",
			},
			"time.sleep": {
				SrcName:  "time.sleep",
				Template: "std::thread::sleep(std::time::Duration::from_secs_f64({args}))",
			},
			"time.monotonic": {
				SrcName:  "time.monotonic",
				Template: "std::time::Instant::now().elapsed().as_secs_f64()",
				Returns:  "f64",
			},
		},
	}
}

func builtinLogging() *Package {
	return &Package{
		Name: "builtin-logging", Crate: "log", SrcModule: "logging",
		Dependencies: []Dependency{{Name: "log", Version: "0.4"}, {Name: "env_logger", Version: "0.11"}},
		Functions: map[string]FuncMapping{
			"logging.debug":     {SrcName: "logging.debug", Template: `log::debug!("{}", {args})`},
			"logging.info":      {SrcName: "logging.info", Template: `log::info!("{}", {args})`},
			"logging.warning":   {SrcName: "logging.warning", Template: `log::warn!("{}", {args})`},
			"logging.warn":      {SrcName: "logging.warn", Template: `log::warn!("{}", {args})`},
			"logging.error":     {SrcName: "logging.error", Template: `log::error!("{}", {args})`},
			"logging.critical":  {SrcName: "logging.critical", Template: `log::error!("{}", {args})`},
			"logging.exception": {SrcName: "logging.exception", Template: `log::error!("{}", {args})`},
		},
	}
}

func builtinOS() *Package {
	return &Package{
		Name: "builtin-os", Crate: "std", SrcModule: "os",
		Functions: map[string]FuncMapping{
			"os.getcwd":      {SrcName: "os.getcwd", Template: "std::env::current_dir()?", NeedsResult: true, Returns: "std::path::PathBuf"},
			"os.listdir":     {SrcName: "os.listdir", Template: "std::fs::read_dir({args})?", NeedsResult: true},
			"os.remove":      {SrcName: "os.remove", Template: "std::fs::remove_file({args})?", NeedsResult: true},
			"os.mkdir":       {SrcName: "os.mkdir", Template: "std::fs::create_dir({args})?", NeedsResult: true},
			"os.makedirs":    {SrcName: "os.makedirs", Template: "std::fs::create_dir_all({args})?", NeedsResult: true},
			"os.path.exists": {SrcName: "os.path.exists", Template: "std::path::Path::new({args}).exists()", Returns: "bool"},
			"os.path.join":   {SrcName: "os.path.join", Template: "std::path::Path::new({args}).join({args})"},
		},
	}
}

// builtinChannel maps SRC's mpsc_channel(capacity) to tokio's bounded
// multi-producer, single-consumer channel constructor (spec.md §5's
// concurrency-model section names spawn/async-sleep/bounded channels as
// the concurrency primitives an emitted program uses; the module already
// pulls in tokio for #[tokio::main], so its own mpsc module covers this
// rather than introducing a second channel crate). Its Returns is a
// parenthesized pair so a destructuring assignment can bind the sender and
// receiver to their own element types.
func builtinChannel() *Package {
	return &Package{
		Name: "builtin-channel", Crate: "tokio", SrcModule: "channel",
		Dependencies: []Dependency{{Name: "tokio", Version: "1", Features: []string{"full"}}},
		Functions: map[string]FuncMapping{
			"mpsc_channel": {
				SrcName:  "mpsc_channel",
				Template: "tokio::sync::mpsc::channel({args})",
				Imports:  []string{"tokio::sync::mpsc::{self, Sender, Receiver}"},
				Returns:  "(Sender<i64>, Receiver<i64>)",
			},
		},
	}
}

func builtinJSON() *Package {
	return &Package{
		Name: "builtin-json", Crate: "serde_json", SrcModule: "json",
		Dependencies: []Dependency{{Name: "serde_json", Version: "1"}},
		Functions: map[string]FuncMapping{
			"json.dumps": {SrcName: "json.dumps", Template: "serde_json::to_string({args})?", NeedsResult: true, Returns: "String"},
			"json.loads": {SrcName: "json.loads", Template: "serde_json::from_str({args})?", NeedsResult: true},
		},
	}
}

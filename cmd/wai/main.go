package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	towit "github.com/singlestore-labs/to-wit"
	"github.com/singlestore-labs/to-wit/abi"
	"github.com/singlestore-labs/to-wit/wai"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to interface definition file")
		funcName    = flag.String("func", "", "Function to describe (optional)")
		dir         = flag.String("dir", "export", "Lowering direction: export or import")
		list        = flag.Bool("list", false, "List functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		debug       = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: wai -file <file.wit> [-func name] [-dir export|import]")
		fmt.Fprintln(os.Stderr, "       wai -file <file.wit> -list")
		fmt.Fprintln(os.Stderr, "       wai -file <file.wit> -i  (interactive mode)")
		os.Exit(1)
	}

	direction := abi.Export
	switch *dir {
	case "export":
	case "import":
		direction = abi.Import
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown direction %q\n", *dir)
		os.Exit(1)
	}

	if *debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		wai.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(*file, direction); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*file, *funcName, direction, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(file, funcName string, direction abi.Direction, listOnly bool) error {
	source, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	s := towit.New(towit.WithDirection(direction))
	defer s.Close()

	if err := s.Parse(source); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	count, err := s.FuncCount()
	if err != nil {
		return err
	}

	if funcName == "" || listOnly {
		fmt.Println("Functions:")
		for i := 0; i < count; i++ {
			f, err := s.FuncByIndex(i)
			if err != nil {
				return err
			}
			fmt.Printf("  %s\n", f.Name())
		}
		return nil
	}

	f, err := s.FuncByName(funcName)
	if err != nil {
		return err
	}
	return printFunc(os.Stdout, s, f)
}

func printFunc(w io.Writer, s *towit.Session, f *wai.Function) error {
	sig, err := s.Signature(f)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Signature:")
	printSigPart(w, "Params", sig.Params)
	printSigPart(w, "Result", sig.Results)
	printSigPart(w, "RetPtr", sig.RetPtr)

	fmt.Fprintln(w, "Params:")
	for pc := f.ParamCursor(); !pc.Done(); pc.Next() {
		p, err := pc.At()
		if err != nil {
			return err
		}
		if err := printType(w, s, p.Name, p.Type, 1); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "Results:")
	for rc := f.ResultCursor(); !rc.Done(); rc.Next() {
		r, err := rc.At()
		if err != nil {
			return err
		}
		if err := printType(w, s, "", r, 1); err != nil {
			return err
		}
	}
	return nil
}

func printSigPart(w io.Writer, label string, types []abi.CoreValType) {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = api.ValueTypeName(t)
	}
	fmt.Fprintf(w, "  %s: [%s]\n", label, strings.Join(names, ", "))
}

// printType renders one node of a type tree with its layout, then recurses
// into the children: record fields, variant case payloads, list element.
func printType(w io.Writer, s *towit.Session, label string, t *wai.TypeDef, indent int) error {
	info, err := s.Layout(t)
	if err != nil {
		return err
	}

	fmt.Fprint(w, strings.Repeat("  ", indent))
	if label != "" {
		fmt.Fprintf(w, "%s: ", label)
	}
	under := t.Despell()
	fmt.Fprintf(w, "[name=%s, type=%s, size=%d, align=%d%s]\n",
		t, under.Kind(), info.Size, info.Align, subKind(under))

	switch under.Kind() {
	case wai.KindRecord:
		fc, err := under.FieldCursor()
		if err != nil {
			return err
		}
		for ; !fc.Done(); fc.Next() {
			field, err := fc.At()
			if err != nil {
				return err
			}
			if err := printType(w, s, field.Name, field.Type, indent+1); err != nil {
				return err
			}
		}

	case wai.KindVariant:
		cc, err := under.CaseCursor()
		if err != nil {
			return err
		}
		for ; !cc.Done(); cc.Next() {
			cs, err := cc.At()
			if err != nil {
				return err
			}
			if cs.Type == nil {
				fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", indent+1), cs.Name)
				continue
			}
			if err := printType(w, s, cs.Name, cs.Type, indent+1); err != nil {
				return err
			}
		}

	case wai.KindList:
		elem, err := under.Elem()
		if err != nil {
			return err
		}
		if err := printType(w, s, "", elem, indent+1); err != nil {
			return err
		}
	}
	return nil
}

func subKind(t *wai.TypeDef) string {
	switch {
	case t.IsTuple():
		return ", kind=tuple"
	case t.IsFlags():
		return ", kind=flags"
	case t.IsBool():
		return ", kind=bool"
	case t.IsEnum():
		return ", kind=enum"
	case t.IsOption():
		return ", kind=option"
	case t.IsExpected():
		return ", kind=expected"
	}
	return ""
}

// Command yangpath is an interactive shell for exploring YANG schemas
// and evaluating schema and data paths against them.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/idryzhov/libyang/data"
	"github.com/idryzhov/libyang/path"
	"github.com/idryzhov/libyang/schema"
	"github.com/idryzhov/libyang/yin"
)

const (
	historyFile = ".yangpath_history"
	prompt      = "> "
)

const helpText = `commands:
  searchpath <dir>...        add YIN module search directories
  add <module> [revision]    load a module into the context
  list                       list loaded modules
  print <module>             print a module's schema tree
  resolve <node-id>          resolve a schema node identifier
  compile <path>             compile a data path against the schema
  eval <path>                evaluate a data path against loaded data
  data <file.xml>            load an XML instance-data document
  module <name>              select the module prefixes resolve from
  keywords [prefix]          list statement keywords, optionally filtered
  clear                      drop all loaded modules and data
  help                       show this help
  quit                       exit
`

func main() {
	sh := &shell{}
	sh.reset()

	if len(os.Args) > 1 {
		sh.loader.SearchDirs = append(sh.loader.SearchDirs, os.Args[1:]...)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	commands := []string{
		"searchpath", "add", "list", "print", "resolve", "compile",
		"eval", "data", "module", "keywords", "clear", "help", "quit",
	}
	ln.SetCompleter(func(line string) (out []string) {
		if cmd, arg, ok := strings.Cut(line, " "); ok {
			if strings.ToLower(cmd) == "keywords" {
				for _, kw := range schema.Keywords() {
					if strings.HasPrefix(kw, arg) {
						out = append(out, cmd+" "+kw)
					}
				}
			}
			return out
		}
		for _, c := range commands {
			if strings.HasPrefix(c, strings.ToLower(line)) {
				out = append(out, c+" ")
			}
		}
		return out
	})

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			fmt.Println()
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if !sh.dispatch(line) {
			return
		}
	}
}

type shell struct {
	ctx    *schema.Context
	loader *schema.Loader
	parser *yin.Parser
	tree   *data.Tree

	// cur is the module unprefixed path names resolve against
	cur *schema.Module
}

func (sh *shell) reset() {
	dirs := []string(nil)
	if sh.loader != nil {
		dirs = sh.loader.SearchDirs
	}
	sh.ctx = &schema.Context{}
	sh.loader = &schema.Loader{SearchDirs: dirs, Log: slog.Default()}
	sh.parser = &yin.Parser{Context: sh.ctx, Loader: sh.loader}
	sh.tree = nil
	sh.cur = nil
}

// dispatch runs one command line, returning false on quit.
func (sh *shell) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		fmt.Print(helpText)
	case "searchpath":
		sh.loader.SearchDirs = append(sh.loader.SearchDirs, args...)
	case "add":
		sh.cmdAdd(args)
	case "list":
		sh.cmdList()
	case "print":
		sh.cmdPrint(args)
	case "resolve":
		sh.cmdResolve(args)
	case "compile":
		sh.cmdCompile(args)
	case "eval":
		sh.cmdEval(args)
	case "data":
		sh.cmdData(args)
	case "module":
		sh.cmdModule(args)
	case "keywords":
		cmdKeywords(args)
	case "clear":
		sh.reset()
	default:
		fmt.Printf("unknown command %q, try help\n", cmd)
	}
	return true
}

func (sh *shell) cmdAdd(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: add <module> [revision]")
		return
	}
	revision := ""
	if len(args) > 1 {
		revision = args[1]
	}
	m, err := sh.parser.LoadModule(args[0], revision)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if sh.cur == nil {
		sh.cur = m
	}
	fmt.Printf("loaded %s\n", moduleLabel(m))
}

func (sh *shell) cmdList() {
	for _, m := range sh.ctx.Modules() {
		marker := " "
		if m == sh.cur {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, moduleLabel(m))
	}
}

func (sh *shell) cmdPrint(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: print <module>")
		return
	}
	m := sh.ctx.Module(args[0])
	if m == nil {
		fmt.Printf("module %q is not loaded\n", args[0])
		return
	}
	for _, n := range m.Data {
		printNode(n, 0)
	}
	for _, n := range m.RPCs {
		printNode(n, 0)
	}
	for _, n := range m.Notifications {
		printNode(n, 0)
	}
}

func printNode(n *schema.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	label := fmt.Sprintf("%s%s %s", indent, n.Kind, n.Name)
	switch {
	case n.Kind&(schema.Leaf|schema.LeafList) != 0:
		label += " {" + n.Type.String() + "}"
	case n.Kind == schema.List && len(n.Keys) > 0:
		names := make([]string, len(n.Keys))
		for i, k := range n.Keys {
			names[i] = k.Name
		}
		label += " [" + strings.Join(names, " ") + "]"
	}
	if n.Status != schema.Current {
		label += " (" + n.Status.String() + ")"
	}
	fmt.Println(label)
	for _, c := range n.Children {
		printNode(c, depth+1)
	}
	if n.Input != nil {
		printNode(n.Input, depth+1)
	}
	if n.Output != nil {
		printNode(n.Output, depth+1)
	}
}

func (sh *shell) cmdResolve(args []string) {
	if len(args) != 1 || sh.cur == nil {
		fmt.Println("usage: resolve <node-id> (load a module first)")
		return
	}
	n, flags, err := schema.ResolveNodeID(args[0], nil, sh.cur, schema.AnyNodeKind)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	var notes []string
	if flags&schema.FlagNotification != 0 {
		notes = append(notes, "in notification")
	}
	if flags&schema.FlagRPCInput != 0 {
		notes = append(notes, "in RPC input")
	}
	if flags&schema.FlagRPCOutput != 0 {
		notes = append(notes, "in RPC output")
	}
	suffix := ""
	if len(notes) > 0 {
		suffix = " (" + strings.Join(notes, ", ") + ")"
	}
	fmt.Printf("%s %s%s\n", n.Kind, n.Path(), suffix)
}

func (sh *shell) compile(src string) (*path.Path, error) {
	e, err := path.Parse(src, path.ParseOptions{Begin: path.BeginAbsolute, Pred: path.PredSimple})
	if err != nil {
		return nil, err
	}
	return path.Compile(sh.cur, nil, e, path.CompileOptions{Target: path.TargetMany})
}

func (sh *shell) cmdCompile(args []string) {
	if len(args) != 1 || sh.cur == nil {
		fmt.Println("usage: compile <path> (load a module first)")
		return
	}
	p, err := sh.compile(args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(p.String())
}

func (sh *shell) cmdEval(args []string) {
	if len(args) != 1 || sh.cur == nil {
		fmt.Println("usage: eval <path> (load a module first)")
		return
	}
	if sh.tree == nil || len(sh.tree.Roots) == 0 {
		fmt.Println("no data loaded, use: data <file.xml>")
		return
	}
	p, err := sh.compile(args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	n, err := path.Eval(p, sh.tree.Roots[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if !n.Value.IsNull() {
		fmt.Printf("%s = %s\n", n.Path(), n.Value.String())
		return
	}
	fmt.Println(n.Path())
}

func (sh *shell) cmdData(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: data <file.xml>")
		return
	}
	f, err := os.Open(args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer f.Close()
	tree, err := data.LoadXML(sh.ctx, f)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	sh.tree = tree
	fmt.Printf("loaded %d top-level node(s)\n", len(tree.Roots))
}

func (sh *shell) cmdModule(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: module <name>")
		return
	}
	m := sh.ctx.Module(args[0])
	if m == nil {
		fmt.Printf("module %q is not loaded\n", args[0])
		return
	}
	sh.cur = m
}

func cmdKeywords(args []string) {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	for _, kw := range schema.Keywords() {
		if strings.HasPrefix(kw, prefix) {
			fmt.Println(kw)
		}
	}
}

func moduleLabel(m *schema.Module) string {
	if rev := m.Revision(); rev != "" {
		return m.Name + "@" + rev
	}
	return m.Name
}

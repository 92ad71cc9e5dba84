// notereq builds and inspects stored transaction requests. It is a thin
// operator tool over the request store: requests declared here are picked
// up later by an executor.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"

	"github.com/veil-ledger/libveil-go/config"
	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/note"
	"github.com/veil-ledger/libveil-go/reqstore"
	"github.com/veil-ledger/libveil-go/request"
)

type options struct {
	DataDir  string `short:"d" long:"datadir" description:"Directory holding the request store"`
	Network  string `long:"network" description:"Ledger network" default:"mainnet" choice:"mainnet" choice:"testnet" choice:"localnet"`
	LogLevel string `long:"loglevel" description:"Logging verbosity" default:"info"`
}

var opts options

// setup validates the configuration, starts logging and opens the store.
func setup() (*reqstore.BoltStore, error) {
	if opts.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate home directory: %w", err)
		}
		opts.DataDir = filepath.Join(home, ".notereq")
	}

	cfg := config.DefaultConfig(opts.DataDir)
	cfg.Network = opts.Network
	cfg.LogLevel = opts.LogLevel
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	if err := initLogRotator(filepath.Join(cfg.DataDir, "logs")); err != nil {
		return nil, err
	}
	setLogLevel(cfg.LogLevel)

	return reqstore.OpenBoltStore(cfg.StorePath())
}

type listCmd struct{}

func (c *listCmd) Execute(_ []string) error {
	store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	ids, err := store.List()
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	mainLog.Infof("%d stored request(s)", len(ids))
	return nil
}

type showCmd struct {
	Args struct {
		Id string `positional-arg-name:"request-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *showCmd) Execute(_ []string) error {
	store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	word, err := felt.ParseWord(c.Args.Id)
	if err != nil {
		return err
	}
	req, err := store.Get(reqstore.RequestId(word))
	if err != nil {
		return err
	}
	printRequest(req)
	return nil
}

type consumeCmd struct {
	Args struct {
		NoteIds []string `positional-arg-name:"note-id" required:"1"`
	} `positional-args:"yes"`
}

func (c *consumeCmd) Execute(_ []string) error {
	store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	ids := make([]note.NoteId, 0, len(c.Args.NoteIds))
	for _, s := range c.Args.NoteIds {
		id, err := note.ParseNoteId(s)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	req := request.ConsumeNotes(ids)
	if err := req.Validate(); err != nil {
		return err
	}
	id, err := store.Put(req)
	if err != nil {
		return err
	}
	mainLog.Infof("Stored consume request %s", id)
	fmt.Println(id)
	return nil
}

type deleteCmd struct {
	Args struct {
		Id string `positional-arg-name:"request-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *deleteCmd) Execute(_ []string) error {
	store, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	word, err := felt.ParseWord(c.Args.Id)
	if err != nil {
		return err
	}
	return store.Delete(reqstore.RequestId(word))
}

// printRequest writes a human-readable summary of a request.
func printRequest(req *request.TransactionRequest) {
	fmt.Printf("input notes:        %d\n", len(req.InputNoteIds()))
	for _, id := range req.InputNoteIds() {
		fmt.Printf("  %s\n", id)
	}
	fmt.Printf("unauthenticated:    %d\n", len(req.UnauthenticatedInputNoteIds()))
	switch tmpl := req.ScriptTemplate(); tmpl.Kind() {
	case request.TemplateUnset:
		fmt.Println("script template:    unset")
	case request.TemplateCustomScript:
		fmt.Printf("script template:    custom script %s\n", tmpl.Script().Root())
	case request.TemplateSendNotes:
		fmt.Printf("script template:    send %d note(s)\n", len(tmpl.SendNotes()))
	}
	fmt.Printf("expected outputs:   %d\n", len(req.ExpectedOutputNotes()))
	for _, n := range req.ExpectedOutputNotes() {
		fmt.Printf("  %s\n", n.Id())
	}
	fmt.Printf("expected future:    %d\n", len(req.ExpectedFutureNotes()))
	for _, d := range req.ExpectedFutureNotes() {
		fmt.Printf("  %s\n", d.Id())
	}
	fmt.Printf("advice entries:     %d\n", req.AdviceMap().Len())
	fmt.Printf("merkle nodes:       %d\n", req.MerkleStore().NumNodes())
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.AddCommand("list", "List stored requests", "List the ids of all stored transaction requests.", &listCmd{})
	parser.AddCommand("show", "Show a stored request", "Print a summary of one stored transaction request.", &showCmd{})
	parser.AddCommand("consume", "Store a consume request", "Build and store a request consuming the given notes.", &consumeCmd{})
	parser.AddCommand("delete", "Delete a stored request", "Remove one stored transaction request.", &deleteCmd{})

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		if logRotator != nil {
			logRotator.Close()
		}
		os.Exit(1)
	}
	if logRotator != nil {
		logRotator.Close()
	}
}

// Command lichee-uci is a Universal Chess Interface front end over the
// board/search engine: it speaks UCI on stdin/stdout and has no other job.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/danwhite/lichee/internal/board"
	"github.com/danwhite/lichee/internal/clock"
	"github.com/danwhite/lichee/internal/eval"
	"github.com/danwhite/lichee/internal/search"
)

const defaultHashMB = 64
const defaultMaxDepth = 64

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")

// engine holds everything that survives across UCI commands: the current
// position, its game history (for repetition detection across the root),
// the transposition table (sized by "setoption name Hash"), and the static
// evaluator, which is stateless and shared for the process lifetime.
type engine struct {
	pos            *board.Position
	positionHashes []uint64
	tt             *search.Table
	eval           *eval.Evaluator

	sc         *search.SearchContext
	searching  atomic.Bool
	searchDone chan struct{}
}

func newEngine() *engine {
	return &engine{
		pos:  board.NewPosition(),
		tt:   search.NewTable(defaultHashMB),
		eval: eval.New(),
	}
}

func main() {
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", *cpuprofile)
	}

	e := newEngine()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			e.handleNewGame()
		case "position":
			e.handlePosition(args)
		case "go":
			e.handleGo(args)
		case "stop":
			e.handleStop()
		case "quit":
			e.handleStop()
			os.Exit(0)
		case "setoption":
			e.handleSetOption(args)
		case "d":
			fmt.Println(e.pos.ToFEN())
		}
	}
}

func handleUCI() {
	fmt.Println("id name lichee")
	fmt.Println("id author danwhite")
	fmt.Println()
	fmt.Println("option name Hash type spin default 64 min 1 max 4096")
	fmt.Println("option name Threads type spin default 1 min 1 max 1")
	fmt.Println("uciok")
}

func (e *engine) handleNewGame() {
	e.tt.Clear()
	e.pos = board.NewPosition()
	e.positionHashes = []uint64{e.pos.Hash}
}

// handlePosition parses:
//
//	position startpos [moves ...]
//	position fen <fen> [moves ...]
func (e *engine) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var moveStart int
	switch args[0] {
	case "startpos":
		e.pos = board.NewPosition()
		moveStart = 1
	case "fen":
		fenEnd := len(args)
		for i, arg := range args[1:] {
			if arg == "moves" {
				fenEnd = i + 1
				break
			}
		}
		pos, err := board.ParseFEN(strings.Join(args[1:fenEnd], " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid FEN: %v\n", err)
			return
		}
		e.pos = pos
		moveStart = fenEnd + 1
	default:
		return
	}

	e.positionHashes = []uint64{e.pos.Hash}

	if moveStart < len(args) {
		for _, moveStr := range args[moveStart:] {
			m, err := board.ParseMove(moveStr, e.pos)
			if err != nil {
				fmt.Fprintf(os.Stderr, "info string invalid move %s: %v\n", moveStr, err)
				return
			}
			e.pos.MakeMove(m)
			e.pos.UpdateCheckers()
			e.positionHashes = append(e.positionHashes, e.pos.Hash)
		}
	}
}

// goOptions holds the parsed arguments of a "go" command.
type goOptions struct {
	depth     int
	nodes     uint64
	moveTime  time.Duration
	infinite  bool
	wtime     time.Duration
	btime     time.Duration
	winc      time.Duration
	binc      time.Duration
	movesToGo int
}

func parseGoOptions(args []string) goOptions {
	var opts goOptions
	for i := 0; i < len(args); i++ {
		next := func() string {
			if i+1 < len(args) {
				i++
				return args[i]
			}
			return ""
		}
		switch args[i] {
		case "depth":
			opts.depth, _ = strconv.Atoi(next())
		case "nodes":
			opts.nodes, _ = strconv.ParseUint(next(), 10, 64)
		case "movetime":
			ms, _ := strconv.Atoi(next())
			opts.moveTime = time.Duration(ms) * time.Millisecond
		case "infinite":
			opts.infinite = true
		case "wtime":
			ms, _ := strconv.Atoi(next())
			opts.wtime = time.Duration(ms) * time.Millisecond
		case "btime":
			ms, _ := strconv.Atoi(next())
			opts.btime = time.Duration(ms) * time.Millisecond
		case "winc":
			ms, _ := strconv.Atoi(next())
			opts.winc = time.Duration(ms) * time.Millisecond
		case "binc":
			ms, _ := strconv.Atoi(next())
			opts.binc = time.Duration(ms) * time.Millisecond
		case "movestogo":
			opts.movesToGo, _ = strconv.Atoi(next())
		}
	}
	return opts
}

func (e *engine) handleGo(args []string) {
	opts := parseGoOptions(args)

	us := 0
	if e.pos.SideToMove == board.Black {
		us = 1
	}
	ply := e.pos.FullMoveNumber * 2

	var clk *clock.Clock
	switch {
	case opts.infinite:
		clk = clock.Infinite()
	case opts.moveTime > 0:
		clk = clock.New(clock.Limits{MoveTime: opts.moveTime}, us, ply)
	case opts.wtime > 0 || opts.btime > 0:
		clk = clock.New(clock.Limits{
			Time:      [2]time.Duration{opts.wtime, opts.btime},
			Inc:       [2]time.Duration{opts.winc, opts.binc},
			MovesToGo: opts.movesToGo,
			Nodes:     opts.nodes,
		}, us, ply)
	default:
		clk = clock.Infinite()
	}

	maxDepth := opts.depth
	if maxDepth <= 0 || maxDepth > defaultMaxDepth {
		maxDepth = defaultMaxDepth
	}

	pos := e.pos.Copy()
	history := append([]uint64(nil), e.positionHashes...)
	e.sc = search.NewContext(pos, e.eval, e.tt, clk, history)

	e.searching.Store(true)
	e.searchDone = make(chan struct{})

	go func() {
		defer close(e.searchDone)
		best := e.sc.IterativeDeepening(maxDepth, func(info search.Info) {
			sendInfo(info, e.tt)
		})
		e.searching.Store(false)
		if best == board.NoMove {
			legal := pos.GenerateLegalMoves()
			if legal.Len() > 0 {
				best = legal.Get(0)
			}
		}
		fmt.Printf("bestmove %s\n", best.String())
	}()
}

func sendInfo(info search.Info, tt *search.Table) {
	var parts []string
	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))
	if info.SelDepth > 0 {
		parts = append(parts, fmt.Sprintf("seldepth %d", info.SelDepth))
	}

	if info.Score > search.MateScore-search.MaxPly {
		mateIn := (search.MateScore - info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else if info.Score < -search.MateScore+search.MaxPly {
		mateIn := -(search.MateScore + info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	if tt != nil {
		parts = append(parts, fmt.Sprintf("hashfull %d", tt.HashFull()))
	}
	if len(info.PV) > 0 {
		pvStrs := make([]string, len(info.PV))
		for i, m := range info.PV {
			pvStrs[i] = m.String()
		}
		parts = append(parts, "pv "+strings.Join(pvStrs, " "))
	}

	fmt.Printf("info %s\n", strings.Join(parts, " "))
}

func (e *engine) handleStop() {
	if e.searching.Load() && e.sc != nil {
		e.sc.Stop()
		<-e.searchDone
	}
}

func (e *engine) handleSetOption(args []string) {
	var name, value string
	var readingName, readingValue bool
	for _, arg := range args {
		switch arg {
		case "name":
			readingName, readingValue = true, false
		case "value":
			readingName, readingValue = false, true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err == nil && mb >= 1 {
			e.tt = search.NewTable(mb)
			log.Printf("transposition table resized to %d MB", mb)
		}
	case "threads":
		// Single-threaded search only; accepted and ignored so GUIs that
		// always send it don't get an "unknown option" response.
	}
}

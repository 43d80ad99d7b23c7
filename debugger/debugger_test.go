package debugger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/s16/isa"
	"github.com/ezrec/s16/machine"
)

var testProgram = []string{
	"start:",
	"  li t0, 0",
	"  li t1, 3",
	"loop:",
	"  addi t0, t0, 1",
	"  lt t2, t0, t1",
	"  j1 t2, loop",
	"done:",
	"  li sp, ARENA_ALLOCABLE",
	"  halt",
}

// writeSource writes lines to a '.s' file in a temporary directory.
func writeSource(t *testing.T, lines ...string) (path string) {
	path = filepath.Join(t.TempDir(), "test.s")
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
	require.NoError(t, err)
	return
}

func newDebugger() (dbg *Debugger, out *strings.Builder) {
	out = &strings.Builder{}
	dbg = NewDebugger(out)
	dbg.Log = logrus.New()
	dbg.Log.SetOutput(out)
	dbg.Log.SetLevel(logrus.WarnLevel)
	return
}

func TestDebuggerSession(t *testing.T) {
	assert := assert.New(t)

	path := writeSource(t, testProgram...)
	dbg, out := newDebugger()

	script := []string{
		"load " + path,
		"break loop",
		"start",
		"continue",
		"info registers t0 pc",
		"continue",
		"unbreak 1",
		"continue",
		"info registers t0 sp",
		"quit",
		"info registers", // not reached
	}

	err := dbg.Run(NewLineReader(strings.NewReader(strings.Join(script, "\n"))))
	assert.NoError(err)

	text := out.String()
	assert.Contains(text, "loaded 28 bytes at 0x0100\n")
	assert.Contains(text, "breakpoint 1 at 0x0108\n")
	assert.Contains(text, "simulation started, execution paused at 0x0100: ori t0, zero, 0x0000 <start>\n")
	assert.Contains(text, "breakpoint 1 after 2 cycles at 0x0108: addi t0, t0, 0x0001 <loop>\n")
	assert.Contains(text, "t0 = 0x0000\npc = 0x0108\n")
	assert.Contains(text, "breakpoint 1 after 3 cycles at 0x0108")
	assert.Contains(text, "halted after 7 cycles at 0x0118: halt\n")
	assert.Contains(text, "t0 = 0x0003\nsp = 0x6000\n")
	assert.NotContains(text, "ccount")

	assert.True(dbg.Halted())
	assert.Equal(uint16(3), dbg.Register.Read(isa.REG_T0))
	assert.Empty(dbg.Breakpoints())
}

func TestDebuggerBreakpoints(t *testing.T) {
	assert := assert.New(t)

	dbg, out := newDebugger()

	assert.NoError(dbg.Execute("break 0x200"))
	assert.NoError(dbg.Execute("break 512"))
	assert.Equal([]Breakpoint{{1, 0x200}, {2, 0x200}}, dbg.Breakpoints())

	assert.NoError(dbg.Execute("info break"))
	assert.Contains(out.String(), "1\t0x0200\t\n2\t0x0200\t\n")

	assert.NoError(dbg.Execute("unbreak 1"))
	assert.Equal([]Breakpoint{{2, 0x200}}, dbg.Breakpoints())

	assert.ErrorIs(dbg.Execute("unbreak 1"), ErrBreakpointUnknown(1))
	assert.ErrorIs(dbg.Execute("break nowhere"), ErrAddress("nowhere"))
	assert.ErrorIs(dbg.Execute("break"), ErrArguments)

	// Numbers are not reused.
	bp := dbg.Break(0x300)
	assert.Equal(3, bp.Id)
}

func TestDebuggerTick(t *testing.T) {
	assert := assert.New(t)

	path := writeSource(t, "li a0, 1", "li a1, 2", "halt")
	dbg, out := newDebugger()

	assert.ErrorIs(dbg.Execute("tick"), ErrResetAsserted)
	assert.ErrorIs(dbg.Execute("continue"), ErrResetAsserted)

	assert.NoError(dbg.Execute("load "+path+" 0x100"))
	assert.NoError(dbg.Execute("start"))
	assert.NoError(dbg.Execute("tick"))
	assert.Contains(out.String(), "0x0104: ori a1, zero, 0x0002\n")

	assert.NoError(dbg.Execute("tick 5"))
	assert.Contains(out.String(), "halted after 1 cycles at 0x0108: halt\n")
	assert.Equal(uint16(2), dbg.Register.Ccount)

	assert.ErrorIs(dbg.Execute("tick 1 2"), ErrArguments)
	assert.Error(dbg.Execute("tick many"))
}

func TestDebuggerStartConfirm(t *testing.T) {
	assert := assert.New(t)

	path := writeSource(t, "nop", "nop", "halt")
	dbg, out := newDebugger()

	script := []string{
		"load " + path,
		"start",
		"tick",
		"start",
		"n",
		"info registers pc",
		"start",
		"y",
		"info registers pc",
	}
	assert.NoError(dbg.Run(NewLineReader(strings.NewReader(strings.Join(script, "\n")))))

	text := out.String()
	assert.Equal(2, strings.Count(text, "restart from beginning? (y/n) "))
	assert.Contains(text, "pc = 0x0104\n")
	assert.Contains(text, "pc = 0x0100\n")
	assert.Equal(2, strings.Count(text, "simulation started"))
}

func TestDebuggerInfo(t *testing.T) {
	assert := assert.New(t)

	dbg, out := newDebugger()
	dbg.Memory.StoreHalfword(0x10, 0xbeef)

	assert.NoError(dbg.Execute("info memory 0x0e:0x21 0x11"))
	expected := strings.Join([]string{
		"0x000e: 00 00",
		"0x0010: ef be 00 00 00 00 00 00 00 00 00 00 00 00 00 00",
		"0x0020: 00 00",
		"0x0011: be",
		"",
	}, "\n")
	assert.Equal(expected, out.String())

	assert.ErrorIs(dbg.Execute("info memory 0x20:0x10"), ErrAddress("0x20:0x10"))

	out.Reset()
	assert.NoError(dbg.Execute("info registers"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(lines, 3+isa.REGISTER_COUNT)
	assert.Equal("pc = 0x0100", lines[0])
	assert.Equal("reset = 0x0001", lines[1])

	err := dbg.Execute("info registers a0 bogus pc")
	assert.ErrorIs(err, ErrRegisterUnknown("bogus"))
	assert.Contains(out.String(), "a0 = 0x0000\npc = 0x0100\n")
}

func TestDebuggerLoadBinary(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "prog.bin")
	assert.NoError(os.WriteFile(path, []byte{0x0f, 0, 0, 0, 0, 0, 0, 0}, 0o644))

	dbg, out := newDebugger()
	assert.NoError(dbg.Execute("load " + path + " 0x200"))
	assert.Contains(out.String(), "loaded 8 bytes at 0x0200\n")
	assert.Nil(dbg.Program)
	assert.Equal(uint32(0x0f), dbg.Memory.LoadWord(0x200))

	assert.ErrorIs(dbg.Execute("load "+path+" 0xfffc"), machine.ErrOutOfMemory)
	assert.ErrorIs(dbg.Execute("load "+filepath.Join(t.TempDir(), "missing")), os.ErrNotExist)
	assert.ErrorIs(dbg.Execute("load"), ErrArguments)
}

func TestDebuggerContinueLimit(t *testing.T) {
	assert := assert.New(t)

	path := writeSource(t, "spin:", "j spin")
	dbg, _ := newDebugger()
	dbg.Limit = 100

	assert.NoError(dbg.Execute("load " + path))
	assert.NoError(dbg.Execute("start"))
	ticks, _, hit, err := dbg.Continue()
	assert.ErrorIs(err, ErrCycleLimit)
	assert.False(hit)
	assert.Equal(100, ticks)
}

func TestDebuggerCommands(t *testing.T) {
	assert := assert.New(t)

	dbg, out := newDebugger()

	assert.ErrorIs(dbg.Execute("frobnicate"), ErrCommandUnknown("frobnicate"))
	assert.ErrorIs(dbg.Execute("info"), ErrCommandUnknown("info"))
	assert.NoError(dbg.Execute("   "))

	assert.NoError(dbg.Execute("help"))
	for _, cmd := range Commands() {
		assert.Contains(out.String(), cmd.Name)
	}

	out.Reset()
	assert.NoError(dbg.Execute("verbose debug"))
	assert.Equal(logrus.DebugLevel, dbg.Log.GetLevel())
	assert.NoError(dbg.Execute("verbose 1"))
	assert.Equal(logrus.InfoLevel, dbg.Log.GetLevel())
	assert.NoError(dbg.Execute("verbose"))
	assert.Contains(out.String(), "verbose: info\n")
	assert.Error(dbg.Execute("verbose loud"))

	out.Reset()
	err := dbg.Run(NewLineReader(strings.NewReader("bogus\nquit\n")))
	assert.NoError(err)
	assert.Contains(out.String(), "error: unknown command 'bogus'")
}

package processor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"codeberg.org/snonux/svenska/internal/audio"
	"codeberg.org/snonux/svenska/internal/examples"
	"codeberg.org/snonux/svenska/internal/queue"
	"codeberg.org/snonux/svenska/internal/session"
)

var (
	styleWord        = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleTranslation = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleSwedish     = lipgloss.NewStyle().Bold(true)
	styleSubtle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleAlert       = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleHeader      = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

const studyHelp = `Commands:
  <enter>    reveal the translation, then next word
  n / p      next / previous word
  e          show or generate examples
  s          speak the word
  1-9        speak an example
  a <ord>    add a Swedish word
  ?          this help
  q          quit`

// Study is an interactive session on a terminal
type Study struct {
	session *session.Session
	cache   *audio.Cache

	outMu sync.Mutex
	out   io.Writer
}

// NewStudy wires a session from the configuration. The caller closes the
// returned study.
func (p *Processor) NewStudy(ctx context.Context) (*Study, error) {
	vocabulary, err := p.Vocabulary()
	if err != nil {
		return nil, err
	}
	generator, err := p.Generator(ctx)
	if err != nil {
		return nil, err
	}
	synth, err := p.Synthesizer()
	if err != nil {
		return nil, err
	}
	player, err := audio.NewPlayer(p.config.AudioPlayer)
	if err != nil {
		return nil, err
	}

	study := &Study{out: p.out}
	study.cache = audio.NewCache(audio.CacheConfig{
		Synthesizer:  synth,
		Player:       player,
		EagerPreload: p.config.EagerPreload,
	})

	s, err := session.New(session.Config{
		Queue:      queue.New(nil, nil),
		Vocabulary: vocabulary,
		Examples:   examples.NewService(generator),
		Audio:      study.cache,
		Translator: p.Translator(),
		Notifier:   session.NotifierFunc(study.alert),
	})
	if err != nil {
		study.cache.Close()
		return nil, err
	}
	study.session = s

	// The local store doubles as the word cache for the proxy
	var cache session.WordCache
	if vocabulary == p.proxy {
		go func() {
			if err := p.proxy.Health(ctx); err != nil {
				log.Debug("proxy wake-up failed", "err", err)
			}
		}()
		if st, err := p.Store(); err == nil {
			cache = st
		} else {
			log.Warn("running without word cache", "err", err)
		}
	}

	if err := s.Bootstrap(ctx, cache); err != nil {
		study.Close()
		return nil, err
	}
	return study, nil
}

// Session returns the underlying session
func (s *Study) Session() *session.Session {
	return s.session
}

// Close stops playback and waits for background work
func (s *Study) Close() {
	s.session.Close()
	s.cache.Close()
}

// RunStudy runs the interactive loop until in is exhausted or the user
// quits
func (p *Processor) RunStudy(ctx context.Context, in io.Reader) error {
	study, err := p.NewStudy(ctx)
	if err != nil {
		return err
	}
	defer study.Close()
	return study.Run(ctx, in)
}

// Run reads commands from in
func (s *Study) Run(ctx context.Context, in io.Reader) error {
	s.println(styleSubtle.Render("Type ? for help."))
	s.render()

	scanner := bufio.NewScanner(in)
	for {
		s.print("> ")
		if !scanner.Scan() {
			s.println("")
			return scanner.Err()
		}
		if quit := s.Handle(ctx, scanner.Text()); quit {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Handle runs one command line and reports whether the user quit
func (s *Study) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")

	var err error
	switch cmd {
	case "":
		err = s.session.OnWordActivate(ctx)
	case "n":
		err = s.session.GoNext()
	case "p":
		s.session.GoPrevious()
	case "e":
		s.println(styleSubtle.Render("Genererar exempel..."))
		err = s.session.GenerateExamples(ctx)
	case "s":
		err = s.session.PlayWord(ctx)
	case "a":
		err = s.session.SubmitCustomWord(ctx, arg)
	case "q", "quit", "exit":
		return true
	case "?", "h", "help":
		s.println(studyHelp)
		return false
	default:
		n, convErr := strconv.Atoi(cmd)
		if convErr != nil || n < 1 {
			s.println(styleSubtle.Render("Unknown command, type ? for help."))
			return false
		}
		if s.session.View().ExamplesState != session.ExamplesShown {
			s.println(styleSubtle.Render("No examples shown, press e first."))
			return false
		}
		err = s.session.PlayExample(ctx, n-1)
	}

	if err != nil {
		log.Debug("command failed", "command", cmd, "err", err)
	}
	s.render()
	return false
}

func (s *Study) render() {
	v := s.session.View()
	if v.Word == nil {
		s.println(styleSubtle.Render("No words yet, add one with: a <ord>"))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", styleSubtle.Render(fmt.Sprintf("[%d/%d]", v.Cursor+1, len(v.History))), styleWord.Render(v.Word.Original))
	if v.Revealed {
		fmt.Fprintf(&b, "      %s\n", styleTranslation.Render(v.Word.Translation))
	}

	switch v.ExamplesState {
	case session.ExamplesLoading:
		b.WriteString(styleSubtle.Render("Genererar exempel...") + "\n")
	case session.ExamplesShown:
		b.WriteString(styleHeader.Render("Exempel") + "\n")
		for i, ex := range v.Examples {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, styleSwedish.Render(ex.Swedish))
			// English stays hidden until the word is revealed
			if v.Revealed {
				fmt.Fprintf(&b, "     %s\n", styleSubtle.Render(ex.English))
			}
		}
	}

	s.print(b.String())
}

func (s *Study) alert(msg string) {
	s.println(styleAlert.Render(msg))
}

func (s *Study) print(text string) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprint(s.out, text)
}

func (s *Study) println(text string) {
	s.print(text + "\n")
}

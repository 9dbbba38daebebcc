/**
* Name: 			mirror.go
* Description: 		Google Sheets 원격 미러 (best-effort)
* Workflow: 		지연 인증/시트 확인 → 헤더 초기화 → 한 행 append, 재시도 없음
 */

package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"ClassroomAnswerLog/internal/models"
	"ClassroomAnswerLog/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// connectTimeout bounds one shared connection attempt. Callers stop waiting
// at their own deadline; the attempt keeps going for whoever comes next.
const connectTimeout = 30 * time.Second

const (
	stageAuth    = "auth"
	stageResolve = "resolve"
	stageAppend  = "append"
)

// HeaderRow is written once when the target worksheet is empty.
var HeaderRow = []interface{}{"Timestamp", "Student", "Prompt", "Answer"}

type Config struct {
	SheetURL    string
	Worksheet   string // empty means the first sheet
	Credentials *ServiceAccount
}

// Mirror appends submission rows to a spreadsheet. A Mirror built without
// credentials or a sheet id is disabled and never touches the network.
type Mirror struct {
	sheetID   string
	worksheet string
	opts      []option.ClientOption
	disabled  string

	connecting singleflight.Group
	conn       atomic.Pointer[connection]
}

type connection struct {
	srv   *sheetsapi.Service
	title string
}

func New(cfg Config) *Mirror {
	sheetID := ExtractSheetID(cfg.SheetURL)
	switch {
	case !cfg.Credentials.Present():
		return disabled("no service account credentials configured")
	case sheetID == "":
		if cfg.SheetURL != "" {
			logger.Log.Warn("sheets.New(): sheet URL format not recognized", zap.String("sheet_url", cfg.SheetURL))
		}
		return disabled("no spreadsheet configured")
	}

	credJSON, err := cfg.Credentials.JSON()
	if err != nil {
		return disabled(err.Error())
	}

	logger.Log.Info("sheets.New(): Google Sheets mirror enabled",
		zap.String("sheet_id", sheetID),
		zap.String("client_email", cfg.Credentials.ClientEmail),
	)
	return newMirror(sheetID, cfg.Worksheet,
		option.WithCredentialsJSON(credJSON),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
}

func newMirror(sheetID, worksheet string, opts ...option.ClientOption) *Mirror {
	return &Mirror{sheetID: sheetID, worksheet: worksheet, opts: opts}
}

func disabled(reason string) *Mirror {
	logger.Log.Info("sheets.New(): Google Sheets mirror disabled", zap.String("reason", reason))
	return &Mirror{disabled: reason}
}

// Enabled reports whether the mirror will attempt network writes.
func (m *Mirror) Enabled() bool {
	return m.disabled == ""
}

// DisabledReason is empty for an enabled mirror.
func (m *Mirror) DisabledReason() string {
	return m.disabled
}

// Mirror makes a single attempt to append rec as one row. Every failure is
// returned as a value.
func (m *Mirror) Mirror(ctx context.Context, rec models.SubmissionRecord) (result models.RemoteResult) {
	if !m.Enabled() {
		return models.Unavailable()
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("Mirror.Mirror(): recovered panic from sheets client", zap.Any("panic", r))
			result = models.RemoteFailure(models.FailureUnknown, fmt.Sprintf("sheets client panic: %v", r))
		}
	}()

	conn, res, ok := m.connect(ctx)
	if !ok {
		return res
	}

	row := make([]interface{}, 0, len(rec.Fields()))
	for _, f := range rec.Fields() {
		row = append(row, f)
	}
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	start := time.Now()
	_, err := conn.srv.Spreadsheets.Values.Append(m.sheetID, a1(conn.title, "A1"), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		res := classify(ctx, stageAppend, err)
		logger.Log.Warn("Mirror.Mirror(): append failed",
			zap.String("kind", string(res.Kind)),
			zap.String("cause", res.Cause),
		)
		return res
	}

	logger.Log.Debug("Mirror.Mirror(): row appended",
		zap.String("prompt_id", rec.PromptID),
		zap.Duration("took", time.Since(start)),
	)
	return models.Mirrored()
}

// connect returns the cached connection or joins the single in-flight attempt
// to open one. Only a successful connection is cached; after a failure the
// next submission starts a new attempt.
func (m *Mirror) connect(ctx context.Context) (*connection, models.RemoteResult, bool) {
	if conn := m.conn.Load(); conn != nil {
		return conn, models.RemoteResult{}, true
	}

	ch := m.connecting.DoChan("connect", func() (interface{}, error) {
		if conn := m.conn.Load(); conn != nil {
			return conn, nil
		}
		dialCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), connectTimeout)
		defer cancel()
		conn, err := m.dial(dialCtx)
		if err != nil {
			return nil, err
		}
		m.conn.Store(conn)
		return conn, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			var cerr *connectError
			if errors.As(r.Err, &cerr) {
				return nil, cerr.result, false
			}
			return nil, classify(ctx, stageAuth, r.Err), false
		}
		return r.Val.(*connection), models.RemoteResult{}, true
	case <-ctx.Done():
		return nil, classify(ctx, stageResolve, ctx.Err()), false
	}
}

// connectError carries an already classified connection failure to every
// caller sharing the attempt.
type connectError struct {
	result models.RemoteResult
}

func (e *connectError) Error() string {
	return e.result.Cause
}

func (m *Mirror) dial(ctx context.Context) (conn *connection, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("Mirror.dial(): recovered panic from sheets client", zap.Any("panic", r))
			err = &connectError{models.RemoteFailure(models.FailureUnknown, fmt.Sprintf("sheets client panic: %v", r))}
		}
	}()
	fail := func(stage string, err error) (*connection, error) {
		return nil, &connectError{classify(ctx, stage, err)}
	}

	// The service outlives this call, so it is not bound to the request ctx.
	srv, err := sheetsapi.NewService(context.Background(), m.opts...)
	if err != nil {
		return fail(stageAuth, err)
	}

	title := m.worksheet
	if title == "" {
		ss, err := srv.Spreadsheets.Get(m.sheetID).Fields("sheets.properties.title").Context(ctx).Do()
		if err != nil {
			return fail(stageResolve, err)
		}
		if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
			return fail(stageResolve, errors.New("spreadsheet has no worksheets"))
		}
		title = ss.Sheets[0].Properties.Title
	}

	header, err := srv.Spreadsheets.Values.Get(m.sheetID, a1(title, "A1:D1")).Context(ctx).Do()
	if err != nil {
		return fail(stageResolve, err)
	}
	if len(header.Values) == 0 {
		hv := &sheetsapi.ValueRange{Values: [][]interface{}{HeaderRow}}
		if _, err := srv.Spreadsheets.Values.Append(m.sheetID, a1(title, "A1"), hv).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do(); err != nil {
			return fail(stageResolve, err)
		}
		logger.Log.Info("Mirror.dial(): initialized header row", zap.String("worksheet", title))
	}

	logger.Log.Info("Mirror.dial(): connected to spreadsheet", zap.String("worksheet", title))
	return &connection{srv: srv, title: title}, nil
}

func a1(title, cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(title, "'", "''"), cells)
}

package service

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/despachos/equipcheck/internal/checklist"
	"github.com/despachos/equipcheck/internal/db"
	"github.com/despachos/equipcheck/internal/repository"
)

type testEnv struct {
	users     *repository.UserRepo
	subs      *repository.SubmissionRepo
	photos    *repository.PhotoRepo
	approvals *repository.ApprovalRepo
	defs      *checklist.Definitions

	authSvc *AuthService
	userSvc *UserService
	subSvc  *SubmissionService
	apprSvc *ApprovalService
	dashSvc *DashboardService
	expSvc  *ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	defs := &checklist.Definitions{
		Equipment: []checklist.Equipment{
			{
				Name: "Excavator 320",
				Items: []checklist.Item{
					{ID: "I1", Section: "Engine", Text: "Engine oil level"},
					{ID: "I2", Section: "Hydraulics", Text: "Hose condition"},
				},
			},
		},
	}

	env := &testEnv{
		users:     repository.NewUserRepo(gdb),
		subs:      repository.NewSubmissionRepo(gdb),
		photos:    repository.NewPhotoRepo(gdb),
		approvals: repository.NewApprovalRepo(gdb),
		defs:      defs,
	}
	env.authSvc = NewAuthService(env.users, "test-secret")
	env.userSvc = NewUserService(env.users, "admin")
	env.subSvc = NewSubmissionService(env.subs, env.photos, env.approvals, defs)
	env.apprSvc = NewApprovalService(env.subs, env.photos, env.approvals, zerolog.Nop())
	env.dashSvc = NewDashboardService(env.subs)
	env.expSvc = NewExportService(env.subs, env.approvals)
	return env
}

// signaturePNG returns a base64 PNG with enough dark pixels to pass the
// blank-signature check.
func signaturePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.White)
		}
	}
	for y := 10; y < 40; y++ {
		for x := 20; x < 80; x++ {
			img.Set(x, y, color.Black)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode signature png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// blankPNG returns a base64 all-white PNG.
func blankPNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode blank png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func validInput(t *testing.T) CreateSubmissionInput {
	return CreateSubmissionInput{
		Equipment:    "Excavator 320",
		Date:         "2026-08-24",
		Shift:        "day",
		GlobalStatus: "OPERATIONAL",
		Note:         "all good",
		Signature:    signaturePNG(t),
		Items: []ItemAnswer{
			{ItemID: "I1", Status: "OPERATIONAL"},
			{ItemID: "I2", Status: "OPERATIONAL", Comment: "minor wear"},
		},
	}
}

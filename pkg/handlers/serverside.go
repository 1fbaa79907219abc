package handlers

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/pbkdf2"

	"github.com/spencer-p/coastprep/pkg/data"
	"github.com/spencer-p/coastprep/pkg/dean"
	"github.com/spencer-p/coastprep/pkg/sites"
	"github.com/spencer-p/coastprep/pkg/visualize"
	"github.com/spencer-p/coastprep/pkg/waves"
)

const (
	sessionName = "coastprep"
	userID      = "userid"
	// See https://developer.chrome.com/blog/cookie-max-age-expires.
	defaultMaxAge = 60 * 60 * 24 * 400 // 400 days in seconds.

	sessionSecretEnvKey = "SESSION_SECRET"
)

//go:embed static
var content embed.FS

var (
	store = &sessions.CookieStore{
		Codecs: securecookie.CodecsFromPairs(
			deriveKey("auth"),
			deriveKey("encrypt"),
		),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   defaultMaxAge,
			Secure:   true,
			HttpOnly: true,
		},
	}
	db = data.PostgresFromEnvOrDie()
)

func init() {
	store.MaxAge(defaultMaxAge)
}

// deriveKey stretches the session secret into a 32 byte key per purpose.
func deriveKey(purpose string) []byte {
	secret := os.Getenv(sessionSecretEnvKey)
	if secret == "" {
		// Sessions won't survive restarts without a configured secret, but
		// the dashboard still works.
		log.Printf("%s unset, using an ephemeral session key", sessionSecretEnvKey)
		secret = string(securecookie.GenerateRandomKey(32))
	}
	return pbkdf2.Key([]byte(secret), []byte(purpose), 4096, 32, sha256.New)
}

// TemplateInput feeds the index template.
type TemplateInput struct {
	Sites []SiteCard
	Name  string
}

// SiteCard is one site's presentation on the index page.
type SiteCard struct {
	Name         string
	Station      string
	Satellites   []string
	ProfileImage template.HTML
	Forcing      *waves.Forcing
}

func makeIndexHandler(cfg *Deps) http.Handler {
	indexTemplate := template.Must(template.ParseFS(content, "static/index.template.html"))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := store.Get(r, sessionName)
		session.Save(r, w)

		profile, closure, user := profileOptionsFromSession(session)

		tinput := TemplateInput{}
		if user != nil {
			tinput.Name = user.Name
		}
		for i := range cfg.Sites.Sites {
			site := &cfg.Sites.Sites[i]
			tinput.Sites = append(tinput.Sites, SiteCard{
				Name:         site.Name,
				Station:      site.Station,
				Satellites:   site.Satellites,
				ProfileImage: profileImage(profile, closure),
				Forcing:      lastForcing(site),
			})
		}

		w.Header().Add("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		if err := indexTemplate.Execute(w, tinput); err != nil {
			log.Printf("Failed to execute template: %v", err)
		}
	})
}

func profileImage(p dean.Profile, closure float64) template.HTML {
	img := visualize.NewCrossShore(p, defaultExtent)
	if closure > 0 {
		img.SetClosureDepth(closure)
	}
	var b bytes.Buffer
	img.Encode(&b)
	return template.HTML(b.String())
}

// lastForcing surfaces the most recently saved wave climate for a site, if
// any run has been saved.
func lastForcing(site *sites.Site) *waves.Forcing {
	var run data.ForcingRun
	if r := db.Where("site = ?", site.Name).Order("created_at desc").First(&run); r.Error != nil {
		return nil
	}
	return &waves.Forcing{
		MeanHeight:     run.MeanHeight,
		MeanPeriod:     run.MeanPeriod,
		ModalDirection: run.ModalDirection,
		Samples:        run.Samples,
	}
}

func saveForcingRun(site, station string, years []int, f waves.Forcing) {
	if len(years) == 0 {
		return
	}
	run := data.ForcingRun{
		Site:           site,
		Station:        station,
		YearStart:      years[0],
		YearEnd:        years[len(years)-1],
		MeanHeight:     f.MeanHeight,
		MeanPeriod:     f.MeanPeriod,
		ModalDirection: f.ModalDirection,
		Samples:        f.Samples,
	}
	if tx := db.Create(&run); tx.Error != nil {
		log.Printf("Failed to save forcing run: %v", tx.Error)
	}
}

// profileOptionsFromSession resolves the user's Dean profile overrides, or
// the defaults when there is no user or lookup fails.
func profileOptionsFromSession(s *sessions.Session) (dean.Profile, float64, *data.User) {
	profile := dean.Default
	closure := 0.0

	id, ok := s.Values[userID]
	if !ok {
		return profile, closure, nil
	}

	// Note the db lookup can fail here, and that's fine. We'll just use
	// default options.
	var user data.User
	if r := db.First(&user, id); r.Error != nil {
		log.Printf("Failed to find user %v: %v", id, r.Error)
		return profile, closure, nil
	}

	if !user.LastSeen.IsZero() {
		log.Printf("User %d (%q) was last seen %s ago", user.ID, user.Name, time.Since(user.LastSeen))
	}
	user.LastSeen = time.Now()
	db.Save(&user)

	if user.ProfileA != nil {
		profile.A = *user.ProfileA
	}
	if user.ProfileM != nil {
		profile.M = *user.ProfileM
	}
	if user.ClosureDepth != nil {
		closure = *user.ClosureDepth
	}
	return profile, closure, &user
}

func makeConfigProfile(redirectPrefix string, cfg *Deps) http.HandlerFunc {
	configTemplate := template.Must(template.ParseFS(content, "static/config.template.html"))

	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := store.Get(r, sessionName)

		if r.Method == http.MethodGet {
			session.Save(r, w)
			profile, closure, user := profileOptionsFromSession(session)
			if err := configTemplate.Execute(w, map[string]any{
				"Profile": profile,
				"Closure": closure,
				"User":    user,
				"Sites":   cfg.Sites.Sites,
			}); err != nil {
				log.Printf("Failed to write config template: %v", err)
			}
			return
		}
		// The remainder of this function assumes method is POST.
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if err := r.ParseForm(); err != nil {
			msg := fmt.Sprintf("Failed to parse form: %v", err)
			log.Println(msg)
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, msg)
			return
		}

		var user data.User
		if id, ok := session.Values[userID].(uint); ok {
			// Read-modify-write if the user provided an ID. Otherwise, one
			// will be generated with db.Save later.
			db.First(&user, id)
		}
		user.ProfileA = formFloatPtr(r, "profile_a")
		user.ProfileM = formFloatPtr(r, "profile_m")
		user.ClosureDepth = formFloatPtr(r, "closure_depth")
		user.DefaultSite = r.PostForm.Get("default_site")
		user.Name = r.PostForm.Get("name")
		user.LastSeen = time.Now()

		if tx := db.Save(&user); tx.Error != nil {
			msg := fmt.Sprintf("Failed to save preferences: %v", tx.Error)
			log.Println(msg)
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, msg)
			return
		}
		session.Values[userID] = user.ID
		session.Save(r, w)

		http.Redirect(w, r, path.Join(redirectPrefix, "/"), http.StatusFound)
	}
}

func formFloatPtr(r *http.Request, key string) *float64 {
	if f, err := strconv.ParseFloat(r.PostForm.Get(key), 64); err == nil {
		return &f
	}
	return nil
}

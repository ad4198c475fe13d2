package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jira-assistant/jira-as/internal/cache"
	"github.com/jira-assistant/jira-as/internal/config"
	"github.com/jira-assistant/jira-as/internal/jira"
	"github.com/jira-assistant/jira-as/internal/ui"
	"github.com/jira-assistant/jira-as/internal/validation"
)

var opsCmd = &cobra.Command{
	Use:     "ops",
	GroupID: "advanced",
	Short:   "Metadata cache and project discovery",
}

// fieldsCache dedupes field metadata fetches within one invocation.
var fieldsCache = cache.New[[]jira.Field](time.Minute)

// metadataStore is the on-disk cache written by cache-warm. Entries expire
// after the configured cache-ttl.
type metadataStore struct {
	WarmedAt time.Time                  `json:"warmedAt"`
	Entries  map[string]json.RawMessage `json:"entries"`
}

func metadataCachePath() string {
	if path := os.Getenv("JIRA_AS_CACHE"); path != "" {
		return path
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "jira-as-cache.json"
	}
	return filepath.Join(dir, "jira-as", "metadata.json")
}

func loadMetadataStore() (*metadataStore, error) {
	data, err := os.ReadFile(metadataCachePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &metadataStore{Entries: map[string]json.RawMessage{}}, nil
		}
		return nil, err
	}
	store := &metadataStore{Entries: map[string]json.RawMessage{}}
	if err := json.Unmarshal(data, store); err != nil {
		return nil, fmt.Errorf("corrupt cache %s: %w", metadataCachePath(), err)
	}
	return store, nil
}

func saveMetadataStore(store *metadataStore) error {
	path := metadataCachePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var cacheStatusCmd = &cobra.Command{
	Use:   "cache-status",
	Short: "Show the metadata cache's contents and freshness",
	Run: func(_ *cobra.Command, _ []string) {
		store, err := loadMetadataStore()
		if err != nil {
			FatalError("%v", err)
		}

		ttl := config.GetDuration(config.KeyCacheTTL)
		age := time.Since(store.WarmedAt)
		expired := store.WarmedAt.IsZero() || (ttl > 0 && age > ttl)

		if jsonOutput {
			keys := make([]string, 0, len(store.Entries))
			for key := range store.Entries {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			outputJSON(map[string]any{
				"path":     metadataCachePath(),
				"warmedAt": store.WarmedAt,
				"ttl":      ttl.String(),
				"expired":  expired,
				"entries":  keys,
			})
			return
		}

		fmt.Printf("  Path:    %s\n", metadataCachePath())
		if store.WarmedAt.IsZero() {
			fmt.Printf("  State:   %s\n", ui.RenderMuted("empty"))
			return
		}
		state := ui.RenderPass("fresh")
		if expired {
			state = ui.RenderWarn("expired")
		}
		fmt.Printf("  Warmed:  %s (%s ago)\n", store.WarmedAt.Format(time.RFC3339), age.Round(time.Second))
		fmt.Printf("  TTL:     %s\n", ttl)
		fmt.Printf("  State:   %s\n", state)
		fmt.Printf("  Entries: %d\n", len(store.Entries))
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "cache-clear",
	Short: "Delete the metadata cache",
	Run: func(_ *cobra.Command, _ []string) {
		fieldsCache.Clear()
		err := os.Remove(metadataCachePath())
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			FatalError("%v", err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"cleared": true})
			return
		}
		okf("Cache cleared")
	},
}

var cacheWarmCmd = &cobra.Command{
	Use:   "cache-warm",
	Short: "Prefetch site and project metadata into the cache",
	Run: func(_ *cobra.Command, _ []string) {
		store := &metadataStore{
			WarmedAt: time.Now(),
			Entries:  map[string]json.RawMessage{},
		}

		var mu sync.Mutex
		put := func(key string, value any) error {
			data, err := json.Marshal(value)
			if err != nil {
				return err
			}
			mu.Lock()
			store.Entries[key] = data
			mu.Unlock()
			return nil
		}

		g, ctx := errgroup.WithContext(rootCtx)
		g.SetLimit(4)
		g.Go(func() error {
			fields, err := client.GetFields(ctx)
			if err != nil {
				return fmt.Errorf("fields: %w", err)
			}
			return put("fields", fields)
		})
		g.Go(func() error {
			projects, err := client.GetProjects(ctx)
			if err != nil {
				return fmt.Errorf("projects: %w", err)
			}
			return put("projects", projects)
		})
		g.Go(func() error {
			statuses, err := client.GetStatuses(ctx)
			if err != nil {
				return fmt.Errorf("statuses: %w", err)
			}
			return put("statuses", statuses)
		})
		g.Go(func() error {
			types, err := client.GetIssueTypes(ctx)
			if err != nil {
				return fmt.Errorf("issue types: %w", err)
			}
			return put("issuetypes", types)
		})
		g.Go(func() error {
			linkTypes, err := client.GetLinkTypes(ctx)
			if err != nil {
				return fmt.Errorf("link types: %w", err)
			}
			return put("linktypes", linkTypes)
		})
		if projectFlag != "" {
			g.Go(func() error {
				boards, err := client.GetAllBoards(ctx, projectFlag)
				if err != nil {
					return fmt.Errorf("boards: %w", err)
				}
				return put("boards:"+projectFlag, boards)
			})
		}
		if err := g.Wait(); err != nil {
			FatalAPIError(err)
		}

		if err := saveMetadataStore(store); err != nil {
			FatalError("writing cache: %v", err)
		}
		if jsonOutput {
			outputJSON(map[string]any{"entries": len(store.Entries), "path": metadataCachePath()})
			return
		}
		okf("Warmed %d cache entries", len(store.Entries))
	},
}

var discoverProjectCmd = &cobra.Command{
	Use:   "discover-project <key>",
	Short: "Summarize a project: workflow, issue types, fields, people",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		key, err := validation.NormalizeProjectKey(args[0])
		if err != nil {
			FatalError("%v", err)
		}

		project, err := client.GetProject(rootCtx, key)
		if err != nil {
			FatalAPIError(err)
		}
		statuses, err := client.GetProjectStatuses(rootCtx, key)
		if err != nil {
			FatalAPIError(err)
		}
		components, err := client.GetProjectComponents(rootCtx, key)
		if err != nil {
			FatalAPIError(err)
		}
		versions, err := client.GetProjectVersions(rootCtx, key)
		if err != nil {
			FatalAPIError(err)
		}
		assignable, err := client.FindAssignableUsers(rootCtx, key, "")
		if err != nil {
			FatalAPIError(err)
		}
		fields, err := fieldsCache.GetOrLoad(rootCtx, "fields", client.GetFields)
		if err != nil {
			FatalAPIError(err)
		}
		agile := discoverAgileFields(fields)

		if jsonOutput {
			outputJSON(map[string]any{
				"project":     project,
				"workflow":    statuses,
				"components":  components,
				"versions":    versions,
				"assignable":  assignable,
				"agileFields": agile,
			})
			return
		}

		fmt.Printf("%s\n\n", ui.RenderHeader(project.Key+"  "+project.Name))
		fmt.Printf("%s\n", ui.CategoryStyle.Render("Workflow"))
		for _, ts := range statuses {
			names := make([]string, len(ts.Statuses))
			for i, s := range ts.Statuses {
				names[i] = s.Name
			}
			fmt.Printf("  %-12s %v\n", ts.Name, names)
		}
		fmt.Printf("\n%s\n", ui.CategoryStyle.Render("Components"))
		for _, c := range components {
			fmt.Printf("  %s\n", c.Name)
		}
		fmt.Printf("\n%s\n", ui.CategoryStyle.Render("Versions"))
		for _, v := range versions {
			released := ""
			if v.Released {
				released = ui.RenderPass("released")
			}
			fmt.Printf("  %-16s %s\n", v.Name, released)
		}
		fmt.Printf("\n%s\n", ui.CategoryStyle.Render("Assignable users"))
		for _, u := range assignable {
			fmt.Printf("  %s\n", u.DisplayName)
		}
		fmt.Printf("\n%s\n", ui.CategoryStyle.Render("Agile fields"))
		fmt.Printf("  story_points: %s\n  epic_link:    %s\n  sprint:       %s\n",
			orDash(agile.StoryPoints), orDash(agile.EpicLink), orDash(agile.Sprint))
	},
}

func init() {
	opsCmd.AddCommand(cacheStatusCmd, cacheClearCmd, cacheWarmCmd, discoverProjectCmd)
	rootCmd.AddCommand(opsCmd)
}

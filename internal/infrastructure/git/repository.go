package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var _ output.GitPort = (*Repository)(nil)

// ErrTagExists is returned by CreateTag when the tag name is already taken.
var ErrTagExists = gogit.ErrTagExists

// DateLayout matches git's default author date format.
const DateLayout = "Mon Jan 2 15:04:05 2006 -0700"

var defaultTagger = object.Signature{Name: "lindia-vv", Email: "vv@lindia.local"}

type Repository struct {
	path string
	now  func() time.Time
}

// Open locates the repository containing path, walking up to the .git directory.
func Open(path string) *Repository {
	return &Repository{path: path, now: time.Now}
}

func (r *Repository) open() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(r.path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository at %s: %w", r.path, err)
	}
	return repo, nil
}

func (r *Repository) HeadCommit(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	repo, err := r.open()
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// ChangedFiles lists the paths touched between HEAD^ and HEAD. A root commit
// has no parent and yields an empty list.
func (r *Repository) ChangedFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo, err := r.open()
	if err != nil {
		return nil, err
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("load HEAD commit: %w", err)
	}

	parent, err := commit.Parent(0)
	if errors.Is(err, object.ErrParentNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load parent commit: %w", err)
	}

	from, err := parent.Tree()
	if err != nil {
		return nil, fmt.Errorf("load parent tree: %w", err)
	}
	to, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("load HEAD tree: %w", err)
	}
	changes, err := object.DiffTreeWithOptions(ctx, from, to, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("diff HEAD^..HEAD: %w", err)
	}

	files := make([]string, 0, len(changes))
	for _, ch := range changes {
		name := ch.To.Name
		if name == "" {
			name = ch.From.Name
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

func (r *Repository) CommitInfo(ctx context.Context, hash string) (entity.CommitInfo, error) {
	info := entity.CommitInfo{Hash: hash}
	if err := ctx.Err(); err != nil {
		return info, err
	}
	repo, err := r.open()
	if err != nil {
		return info, err
	}
	commit, err := r.resolveCommit(repo, hash)
	if err != nil {
		return info, err
	}

	return entity.CommitInfo{
		Hash:    commit.Hash.String(),
		Author:  commit.Author.Name,
		Email:   commit.Author.Email,
		Date:    commit.Author.When.Format(DateLayout),
		Message: firstLine(commit.Message),
	}, nil
}

// CreateTag writes an annotated tag pointing at hash. The tagger comes from
// the git config user, or a fixed identity when none is configured.
func (r *Repository) CreateTag(ctx context.Context, name, hash, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo, err := r.open()
	if err != nil {
		return err
	}
	commit, err := r.resolveCommit(repo, hash)
	if err != nil {
		return err
	}

	tagger := r.tagger(repo)
	if _, err := repo.CreateTag(name, commit.Hash, &gogit.CreateTagOptions{
		Tagger:  &tagger,
		Message: message,
	}); err != nil {
		return fmt.Errorf("create tag %s: %w", name, err)
	}
	return nil
}

func (r *Repository) resolveCommit(repo *gogit.Repository, rev string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("load commit %s: %w", rev, err)
	}
	return commit, nil
}

func (r *Repository) tagger(repo *gogit.Repository) object.Signature {
	sig := defaultTagger
	if cfg, err := repo.ConfigScoped(config.GlobalScope); err == nil {
		if cfg.User.Name != "" {
			sig.Name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			sig.Email = cfg.User.Email
		}
	}
	sig.When = r.now()
	return sig
}

func firstLine(msg string) string {
	for i, c := range msg {
		if c == '\n' {
			return msg[:i]
		}
	}
	return msg
}

package pom

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	DefaultMavenRepoURL = "https://repo1.maven.org/maven2"
	EnvMavenRepoURL     = "MAVEN_REPO_URL"
)

var (
	ErrMetadataNotFound  = errors.New("maven metadata not found")
	ErrNoMatchingVersion = errors.New("no version matches")
)

// MetadataSource lists the published versions of an artifact.
type MetadataSource interface {
	Metadata(ctx context.Context, groupID, artifactID string) (*Metadata, error)
}

// MetadataFetcher reads maven-metadata.xml from a Maven repository over
// HTTP. Responses are cached per artifact for the fetcher's lifetime.
type MetadataFetcher struct {
	RepoURL    string
	httpClient *http.Client

	mu    sync.Mutex
	cache map[string]*Metadata
}

// NewMetadataFetcher returns a fetcher for repoURL. An empty repoURL falls
// back to $MAVEN_REPO_URL and then to Maven Central.
func NewMetadataFetcher(repoURL string) *MetadataFetcher {
	if repoURL == "" {
		repoURL = os.Getenv(EnvMavenRepoURL)
	}
	if repoURL == "" {
		repoURL = DefaultMavenRepoURL
	}
	return &MetadataFetcher{
		RepoURL:    strings.TrimSuffix(repoURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      make(map[string]*Metadata),
	}
}

func (f *MetadataFetcher) Metadata(ctx context.Context, groupID, artifactID string) (*Metadata, error) {
	key := groupID + ":" + artifactID
	f.mu.Lock()
	md, ok := f.cache[key]
	f.mu.Unlock()
	if ok {
		return md, nil
	}

	url := f.metadataURL(groupID, artifactID)
	log.Debugf("fetching %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrMetadataNotFound, key)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch metadata: HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	md = &Metadata{}
	if err := xml.Unmarshal(data, md); err != nil {
		return nil, fmt.Errorf("parse metadata for %s: %w", key, err)
	}

	f.mu.Lock()
	f.cache[key] = md
	f.mu.Unlock()
	return md, nil
}

func (f *MetadataFetcher) metadataURL(groupID, artifactID string) string {
	groupPath := strings.ReplaceAll(groupID, ".", "/")
	return fmt.Sprintf("%s/%s/%s/maven-metadata.xml", f.RepoURL, groupPath, artifactID)
}

// ResolveVersion returns the newest published version of an artifact
// matched by sel.
func ResolveVersion(ctx context.Context, source MetadataSource, groupID, artifactID string, sel Selector) (string, error) {
	if source == nil {
		return "", fmt.Errorf("%w %s for %s:%s: no metadata source", ErrNoMatchingVersion, sel, groupID, artifactID)
	}
	md, err := source.Metadata(ctx, groupID, artifactID)
	if err != nil {
		return "", err
	}
	v, ok := sel.Select(md.Versioning.Versions)
	if !ok {
		return "", fmt.Errorf("%w %s for %s:%s", ErrNoMatchingVersion, sel, groupID, artifactID)
	}
	return v, nil
}

// ParseCoordinate splits "groupId:artifactId[:version[:scope]]".
func ParseCoordinate(coord string) (Dependency, error) {
	parts := strings.Split(coord, ":")
	if len(parts) < 2 || len(parts) > 4 || parts[0] == "" || parts[1] == "" {
		return Dependency{}, fmt.Errorf("invalid Maven coordinate: %s (expected groupId:artifactId[:version[:scope]])", coord)
	}
	d := Dependency{GroupID: parts[0], ArtifactID: parts[1]}
	if len(parts) > 2 {
		d.Version = parts[2]
	}
	if len(parts) > 3 {
		d.Scope = Scope(parts[3])
	}
	return d, nil
}

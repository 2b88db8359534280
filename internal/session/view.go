package session

import "github.com/debemdeboas/the-notebook/internal/model"

// DocumentView is one sidebar entry.
type DocumentView struct {
	ID           model.DocumentID `json:"id"`
	Title        string           `json:"title"`
	DisplayTitle string           `json:"displayTitle"`
	Created      string           `json:"created"`
	CreatedAt    int64            `json:"createdAt"`
	Current      bool             `json:"current"`
}

// View is a read-only snapshot of everything the presentation layer shows.
type View struct {
	Documents     []DocumentView   `json:"documents"`
	CurrentID     model.DocumentID `json:"currentId,omitempty"`
	Draft         bool             `json:"draft"`
	Title         string           `json:"title"`
	SidebarOpen   bool             `json:"sidebarOpen"`
	Status        string           `json:"status"`
	Copied        bool             `json:"copied"`
	DeletePending bool             `json:"deletePending"`
	DeleteTitle   string           `json:"deleteTitle,omitempty"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, _ := s.cursor.Current()
	docs := s.repo.List()

	v := View{
		Documents:   make([]DocumentView, 0, len(docs)),
		CurrentID:   current,
		Draft:       s.cursor.IsDraft(),
		Title:       s.cursor.Title(),
		SidebarOpen: s.sidebarOpen,
		Status:      s.status,
		Copied:      s.copied,
	}
	for _, doc := range docs {
		v.Documents = append(v.Documents, DocumentView{
			ID:           doc.ID,
			Title:        doc.Title,
			DisplayTitle: model.DisplayTitleFor(doc.Content, s.drafts.Placeholder()),
			Created:      model.FormatTimestamp(doc.CreatedAt),
			CreatedAt:    doc.CreatedAt,
			Current:      doc.ID == current,
		})
	}
	if s.pendingDelete != nil {
		v.DeletePending = true
		v.DeleteTitle = s.pendingDelete.title
	}
	return v
}

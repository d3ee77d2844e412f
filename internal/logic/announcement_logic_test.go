package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAnnouncement(t *testing.T) {
	db := newTestDB(t)
	a := NewAnnouncementLogic(db)
	author := seedUser(t, db, "creator@example.com", "Creator")
	project := seedProject(t, db, author.Id)

	announcement, err := a.CreateAnnouncement(project.Id, author,
		"First beds are built", "The first ten raised beds are assembled and ready.")
	require.NoError(t, err)
	assert.NotEmpty(t, announcement.Id)
	assert.Equal(t, author.Id, announcement.AuthorId)
	assert.Equal(t, "Creator", announcement.AuthorName)

	// 非项目创建者不能发公告
	stranger := seedUser(t, db, "stranger@example.com", "Stranger")
	_, err = a.CreateAnnouncement(project.Id, stranger, "Fake update", "Not allowed at all.")
	assert.Error(t, err)
}

func TestGetProjectAnnouncements(t *testing.T) {
	db := newTestDB(t)
	a := NewAnnouncementLogic(db)
	author := seedUser(t, db, "creator@example.com", "Creator")
	project := seedProject(t, db, author.Id)

	for _, title := range []string{"Update one", "Update two", "Update three"} {
		_, err := a.CreateAnnouncement(project.Id, author, title, "Some announcement body text here.")
		require.NoError(t, err)
	}

	announcements, total, err := a.GetProjectAnnouncements(project.Id, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, announcements, 2)
}

func TestDeleteAnnouncement(t *testing.T) {
	db := newTestDB(t)
	a := NewAnnouncementLogic(db)
	author := seedUser(t, db, "creator@example.com", "Creator")
	project := seedProject(t, db, author.Id)

	announcement, err := a.CreateAnnouncement(project.Id, author,
		"First beds are built", "The first ten raised beds are assembled and ready.")
	require.NoError(t, err)

	// 只有作者能删
	assert.Error(t, a.DeleteAnnouncement(announcement.Id, author.Id+1))
	require.NoError(t, a.DeleteAnnouncement(announcement.Id, author.Id))

	_, total, err := a.GetProjectAnnouncements(project.Id, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

package comment

import (
	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/util"
)

func rowToComment(row core.CommentRow) core.Comment {
	return core.Comment{
		ID:          row.ID,
		UserName:    row.UserName,
		UserAvatar:  util.Deref(row.UserAvatar, ""),
		Timestamp:   util.Deref(row.Timestamp, ""),
		Content:     row.Content,
		ParentID:    util.Deref(row.ParentID, ""),
		ReplyToName: util.Deref(row.ReplyToName, ""),
	}
}

func commentToRow(logID, owner string, comment core.Comment) core.CommentRow {
	return core.CommentRow{
		LogID:       logID,
		UserID:      owner,
		UserName:    comment.UserName,
		UserAvatar:  util.PtrOrNil(comment.UserAvatar),
		Timestamp:   util.PtrOrNil(comment.Timestamp),
		Content:     comment.Content,
		ParentID:    util.PtrOrNil(comment.ParentID),
		ReplyToName: util.PtrOrNil(comment.ReplyToName),
	}
}

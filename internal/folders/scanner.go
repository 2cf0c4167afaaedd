package folders

import "github.com/filedesk/filevault/pkg/repository"

const folderColumns = "id, name"

func scanFolder(s repository.Scanner) (Folder, error) {
	var f Folder
	err := s.Scan(&f.ID, &f.Name)
	return f, err
}

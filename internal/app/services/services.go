// Package services holds the planner's business rules. Services read and
// write through the small store interfaces in stores.go and return DTOs.
//
// Services defined in this package:
//   - SemesterService: academic years, semester labels and client metadata
//   - CourseService: the course catalog
//   - CourseInstanceService: courses per semester, instructors, multi-year plan
//   - FacultyService: faculty, instructors, absences and the faculty schedule
//   - MeetingService: meeting lists, rooms and room availability
//   - NonClassService: non-class parents and their events
//   - ScheduleService: the weekly schedule view
//   - ViewService: saved course table views
//   - ReportService: xlsx exports
package services
